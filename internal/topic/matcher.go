package topic

// Matcher holds an ordered set of subscription patterns and answers whether
// a concrete topic is matched by any of them.
//
// A Hat's subscription list is expected to be small (a handful of patterns),
// so Matcher scans linearly rather than building a trie: at this scale a
// linear scan is simpler and just as fast, and it avoids the trie's
// whole-pattern-set semantics, which don't fit the per-hat, insertion-order
// matching the bus performs (see package event).
type Matcher struct {
	patterns []Topic
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Add appends a pattern to the matcher. Duplicate patterns are ignored so
// that repeated subscription calls stay idempotent.
func (m *Matcher) Add(pattern Topic) {
	if m.Has(pattern) {
		return
	}
	m.patterns = append(m.patterns, pattern)
}

// Has returns true if the exact pattern string was added to the matcher.
func (m *Matcher) Has(pattern Topic) bool {
	for _, p := range m.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// MatchAny returns true if any pattern in the matcher matches eventTopic.
func (m *Matcher) MatchAny(eventTopic Topic) bool {
	for _, p := range m.patterns {
		if Matches(p, eventTopic) {
			return true
		}
	}
	return false
}

// Patterns returns the patterns in insertion order.
func (m *Matcher) Patterns() []Topic {
	return m.patterns
}

// Count returns the number of patterns in the matcher.
func (m *Matcher) Count() int {
	return len(m.patterns)
}
