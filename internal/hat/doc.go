// Package hat manages the registry of personas ("hats") the orchestrator
// can dispatch events to. A hat pairs a set of topic subscriptions with the
// instruction text injected into that hat's prompt, and optionally a
// backend override distinct from the loop's default CLI invocation.
//
// The registry is sealed after startup: hats are registered once, in a
// fixed order, and that order is never reshuffled. It is the tie-breaker
// used by the event bus when more than one hat's subscription pattern
// matches an event with no explicit target.
package hat
