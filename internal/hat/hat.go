package hat

import (
	"errors"
	"fmt"

	"github.com/dshills/ralphloop/internal/executor"
	"github.com/dshills/ralphloop/internal/topic"
)

// ErrDuplicateID is returned by Register when a hat with the same ID has
// already been registered.
var ErrDuplicateID = errors.New("hat: duplicate id")

// ErrEmptyID is returned by Register when a hat has no ID.
var ErrEmptyID = errors.New("hat: empty id")

// Hat is one persona the orchestrator can dispatch an iteration to: a set
// of topics it listens for, the instructions injected into its prompt, and
// optionally the topics it is documented to publish (informational only;
// not enforced).
type Hat struct {
	// ID uniquely identifies the hat (e.g. "planner", "implementer").
	ID string

	// DisplayName is a human-readable label used in logs and summaries.
	// Defaults to ID when empty.
	DisplayName string

	// Subscriptions are the topic patterns this hat is dispatched for.
	Subscriptions []topic.Topic

	// Publishes documents the topics this hat is expected to emit. It has
	// no effect on routing; it exists for operators reading a config.
	Publishes []topic.Topic

	// Instructions is the hat-specific prompt text, composed after the
	// orchestration preamble and before the triggering event's payload.
	Instructions string

	// BackendOverride, when non-nil, replaces the loop's default CLI
	// backend configuration for iterations dispatched to this hat.
	BackendOverride *executor.Config
}

// Name returns DisplayName if set, otherwise ID.
func (h *Hat) Name() string {
	if h.DisplayName != "" {
		return h.DisplayName
	}
	return h.ID
}

// MatchesTopic reports whether t satisfies any of the hat's subscriptions.
func (h *Hat) MatchesTopic(t topic.Topic) bool {
	for _, pattern := range h.Subscriptions {
		if topic.Matches(pattern, t) {
			return true
		}
	}
	return false
}

// Registry holds the sealed, ordered set of hats known to one orchestrator
// run. Registration order is significant: it is the dispatch tie-breaker
// when multiple hats subscribe to an event's topic.
type Registry struct {
	order []string
	byID  map[string]*Hat
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Hat)}
}

// Register adds h to the registry. Registration order is preserved;
// registering the same ID twice is an error.
func (r *Registry) Register(h *Hat) error {
	if h.ID == "" {
		return ErrEmptyID
	}
	if _, exists := r.byID[h.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, h.ID)
	}
	r.byID[h.ID] = h
	r.order = append(r.order, h.ID)
	return nil
}

// Get returns the hat with the given ID, if any.
func (r *Registry) Get(id string) (*Hat, bool) {
	h, ok := r.byID[id]
	return h, ok
}

// Has reports whether id is a registered hat.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Order returns hat IDs in registration order.
func (r *Registry) Order() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered hats.
func (r *Registry) Len() int {
	return len(r.order)
}

// FirstMatch returns the first registered hat (in registration order)
// whose subscriptions match t, or false if none do.
func (r *Registry) FirstMatch(t topic.Topic) (*Hat, bool) {
	for _, id := range r.order {
		h := r.byID[id]
		if h.MatchesTopic(t) {
			return h, true
		}
	}
	return nil, false
}
