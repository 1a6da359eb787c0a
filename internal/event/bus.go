package event

import (
	"github.com/rs/zerolog"

	"github.com/dshills/ralphloop/internal/hat"
	"github.com/dshills/ralphloop/internal/topic"
)

// Bus is the orchestrator's single-owner event queue. All methods must be
// called from one goroutine; the bus performs no internal locking.
type Bus struct {
	registry *hat.Registry
	subs     map[string]*topic.Matcher
	queue    []Event
	seq      uint64
	dropped  uint64
	logger   zerolog.Logger
}

// NewBus returns a Bus backed by the given (already-sealed) hat registry.
func NewBus(registry *hat.Registry, logger zerolog.Logger) *Bus {
	return &Bus{
		registry: registry,
		subs:     make(map[string]*topic.Matcher),
		logger:   logger,
	}
}

// Subscribe records that hatID should be considered for events matching
// pattern. Subscribing the same (hatID, pattern) pair twice is a no-op.
func (b *Bus) Subscribe(hatID string, pattern topic.Topic) {
	m, ok := b.subs[hatID]
	if !ok {
		m = topic.NewMatcher()
		b.subs[hatID] = m
	}
	m.Add(pattern)
}

// Publish assigns the next sequence number to evt and enqueues it at the
// tail of the queue. The stamped Event is returned.
func (b *Bus) Publish(evt Event) Event {
	b.seq++
	evt.Sequence = b.seq
	b.queue = append(b.queue, evt)
	return evt
}

// NextReady pops the head of the queue and resolves its recipient hat. It
// returns ok == false once the queue is empty. A popped event that matches
// no hat is dropped (logged, not returned) and the next queue entry is
// tried, so a single call can consume more than one queued event before
// returning — or before exhausting the queue.
func (b *Bus) NextReady() (Event, string, bool) {
	for len(b.queue) > 0 {
		evt := b.queue[0]
		b.queue = b.queue[1:]

		if evt.Target != "" {
			if b.registry.Has(evt.Target) {
				return evt, evt.Target, true
			}
			b.logger.Warn().
				Str("topic", evt.Topic.String()).
				Str("target", evt.Target).
				Msg("event dropped: target hat not registered")
			b.dropped++
			continue
		}

		if hatID, ok := b.firstSubscriberMatch(evt.Topic); ok {
			return evt, hatID, true
		}

		b.logger.Warn().
			Str("topic", evt.Topic.String()).
			Msg("event dropped: no hat subscribed to topic")
		b.dropped++
	}
	return Event{}, "", false
}

// firstSubscriberMatch scans hats in registration order and returns the
// first whose subscription set matches t.
func (b *Bus) firstSubscriberMatch(t topic.Topic) (string, bool) {
	for _, id := range b.registry.Order() {
		m, ok := b.subs[id]
		if !ok {
			continue
		}
		if m.MatchAny(t) {
			return id, true
		}
	}
	return "", false
}

// PendingCount returns the number of events still queued.
func (b *Bus) PendingCount() int {
	return len(b.queue)
}

// DroppedCount returns the number of events dropped so far for lacking a
// resolvable recipient. Dropped events never affect safeguards.
func (b *Bus) DroppedCount() uint64 {
	return b.dropped
}
