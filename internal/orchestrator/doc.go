// Package orchestrator drives the event-loop state machine: it seeds the
// bus with the initial prompt, repeatedly picks the next ready event and
// its hat, composes that hat's prompt, invokes the subprocess executor,
// republishes the events the child emitted, applies safeguards in a fixed
// precedence order, and terminates with a typed reason.
//
// The orchestrator is the single owner of the event bus and the loop
// state; it runs on one goroutine and performs no concurrent dispatch —
// at most one agent subprocess executes at any instant, by design.
package orchestrator
