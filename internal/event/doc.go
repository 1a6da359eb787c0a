// Package event implements the in-memory pub/sub bus that connects the
// orchestrator to its hats. The bus is pull-based and single-owner: only
// the orchestrator calls Publish and NextReady, on its own goroutine, so
// no internal locking is required.
//
// Delivery is resolved lazily, at pop time rather than at publish time:
// an event with an explicit Target is routed there if the target hat is
// registered; otherwise the bus scans hats in registration order and
// delivers to the first whose subscription set matches the topic. An
// event matching no hat is dropped with a logged warning — this never
// fails the run and never counts against a safeguard.
package event
