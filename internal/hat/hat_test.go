package hat

import (
	"errors"
	"testing"

	"github.com/dshills/ralphloop/internal/topic"
)

func TestHat_Name(t *testing.T) {
	h := &Hat{ID: "planner"}
	if h.Name() != "planner" {
		t.Errorf("Name() = %q, want %q", h.Name(), "planner")
	}
	h.DisplayName = "Planner"
	if h.Name() != "Planner" {
		t.Errorf("Name() = %q, want %q", h.Name(), "Planner")
	}
}

func TestHat_MatchesTopic(t *testing.T) {
	h := &Hat{
		ID:            "implementer",
		Subscriptions: []topic.Topic{"task.*", "plan.approved"},
	}
	cases := []struct {
		t    topic.Topic
		want bool
	}{
		{"task.start", true},
		{"task.retry", true},
		{"plan.approved", true},
		{"plan.rejected", false},
		{"review.done", false},
	}
	for _, c := range cases {
		if got := h.MatchesTopic(c.t); got != c.want {
			t.Errorf("MatchesTopic(%q) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Hat{ID: "planner"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(&Hat{ID: "implementer"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if !r.Has("planner") {
		t.Error("expected planner to be registered")
	}
	h, ok := r.Get("implementer")
	if !ok || h.ID != "implementer" {
		t.Errorf("Get(implementer) = %v, %v", h, ok)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_RegisterEmptyID(t *testing.T) {
	r := NewRegistry()
	err := r.Register(&Hat{ID: ""})
	if !errors.Is(err, ErrEmptyID) {
		t.Errorf("Register() error = %v, want ErrEmptyID", err)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Hat{ID: "planner"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := r.Register(&Hat{ID: "planner"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Register() error = %v, want ErrDuplicateID", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (duplicate must not be added)", r.Len())
	}
}

func TestRegistry_OrderPreservesRegistrationSequence(t *testing.T) {
	r := NewRegistry()
	ids := []string{"planner", "implementer", "reviewer"}
	for _, id := range ids {
		if err := r.Register(&Hat{ID: id}); err != nil {
			t.Fatalf("Register(%q) error = %v", id, err)
		}
	}
	got := r.Order()
	for i, id := range ids {
		if got[i] != id {
			t.Errorf("Order()[%d] = %q, want %q", i, got[i], id)
		}
	}
}

func TestRegistry_OrderReturnsCopy(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&Hat{ID: "planner"})
	got := r.Order()
	got[0] = "mutated"
	if r.Order()[0] != "planner" {
		t.Error("Order() must return a defensive copy")
	}
}

func TestRegistry_FirstMatch(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&Hat{ID: "planner", Subscriptions: []topic.Topic{"task.*"}})
	_ = r.Register(&Hat{ID: "implementer", Subscriptions: []topic.Topic{"task.*"}})
	_ = r.Register(&Hat{ID: "reviewer", Subscriptions: []topic.Topic{"impl.done"}})

	h, ok := r.FirstMatch("task.start")
	if !ok || h.ID != "planner" {
		t.Errorf("FirstMatch(task.start) = %v, %v, want planner", h, ok)
	}

	h, ok = r.FirstMatch("impl.done")
	if !ok || h.ID != "reviewer" {
		t.Errorf("FirstMatch(impl.done) = %v, %v, want reviewer", h, ok)
	}

	_, ok = r.FirstMatch("unrelated.topic")
	if ok {
		t.Error("FirstMatch(unrelated.topic) should not match")
	}
}
