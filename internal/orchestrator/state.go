package orchestrator

import "time"

// State names a node in the orchestrator's state machine.
type State string

const (
	StateIdle        State = "idle"
	StateDispatching State = "dispatching"
	StateRunning     State = "running"
	StateEvaluating  State = "evaluating"
	StateTerminating State = "terminating"
)

// TerminationReason classifies why a run stopped.
type TerminationReason string

const (
	// ReasonNone means the run has not terminated yet.
	ReasonNone TerminationReason = ""

	// ReasonComplete means the completion sentinel was detected.
	ReasonComplete TerminationReason = "complete"

	// ReasonDrained means the bus ran out of ready events with nothing
	// left to dispatch.
	ReasonDrained TerminationReason = "drained"

	// ReasonIterations means max_iterations was reached.
	ReasonIterations TerminationReason = "iterations"

	// ReasonRuntime means max_runtime_seconds was exceeded.
	ReasonRuntime TerminationReason = "runtime"

	// ReasonCost means max_cost_usd was exceeded.
	ReasonCost TerminationReason = "cost"

	// ReasonFailures means max_consecutive_failures was reached.
	ReasonFailures TerminationReason = "failures"

	// ReasonIdle means idle_timeout_secs was exceeded since the last
	// successful iteration.
	ReasonIdle TerminationReason = "idle"

	// ReasonInterrupted means an external interruption signal stopped
	// the run mid-iteration.
	ReasonInterrupted TerminationReason = "interrupted"
)

// ExitCode maps a termination reason to the orchestrator process's exit
// status, per the documented contract.
func (r TerminationReason) ExitCode() int {
	switch r {
	case ReasonComplete:
		return 0
	case ReasonDrained:
		return 2
	case ReasonInterrupted:
		return 130
	case ReasonNone:
		return 0
	default:
		return 1
	}
}

// LoopState tracks mutable progress across iterations. It is created at
// loop start and discarded when the loop terminates.
type LoopState struct {
	Iteration               int
	ConsecutiveFailures      int
	CumulativeCostUSD        float64
	StartTime                time.Time
	LastSuccessTime          time.Time
	LastCheckpointIteration  int
	UnroutableCount          uint64
	TerminationReason        TerminationReason
}

// NewLoopState returns a LoopState with StartTime and LastSuccessTime set
// to start (the latter so an idle timeout cannot trip before the first
// iteration completes).
func NewLoopState(start time.Time) *LoopState {
	return &LoopState{StartTime: start, LastSuccessTime: start}
}

// RecordSuccess resets the consecutive-failure counter and marks now as
// the last successful iteration.
func (s *LoopState) RecordSuccess(now time.Time) {
	s.ConsecutiveFailures = 0
	s.LastSuccessTime = now
}

// RecordFailure increments the consecutive-failure counter. It does not
// touch LastSuccessTime.
func (s *LoopState) RecordFailure() {
	s.ConsecutiveFailures++
}
