package event

import "github.com/dshills/ralphloop/internal/topic"

// Event is an immutable record flowing through the bus. Events are never
// mutated after publish; Sequence is assigned by the bus at that time.
type Event struct {
	// Topic classifies the event for pattern-based routing.
	Topic topic.Topic

	// Payload is the opaque body text carried by the event.
	Payload string

	// Source is the ID of the hat that emitted this event, or "" for
	// bus-seeded events (e.g. the initial task.start).
	Source string

	// Target, when non-empty, names the hat this event must be delivered
	// to directly, bypassing topic matching.
	Target string

	// Sequence is assigned at publish time and strictly increases across
	// the life of a bus. It is the total order tie-break.
	Sequence uint64
}
