// Package topic provides hierarchical topic types and glob-style pattern
// matching used to route events onto subscribing hats.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	task.start
//	impl.done
//	review.rejected
//	plugin.vim-surround.activated
//
// # Wildcards
//
//   - "*" matches exactly one segment.
//   - "**", or a bare "*" as the final segment of a longer pattern, matches
//     any number of remaining segments (including zero).
//   - The pattern "*" on its own (no dots) is a special case: it subscribes
//     to every event regardless of how many segments the topic has.
//
// Examples:
//
//	task.*.done         matches task.a.done (not task.a.b.done)
//	task.**             matches task.start, task.a.b.c
//	impl.*              trailing bare "*" behaves like "**": matches impl.done, impl.a.b
//	*                   matches everything
//
// Matching is case-sensitive and deterministic: the same (pattern, topic)
// pair always produces the same result.
package topic
