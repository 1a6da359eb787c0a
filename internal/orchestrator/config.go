package orchestrator

import "time"

// DefaultCompletionPromise is the sentinel string used when the config
// omits event_loop.completion_promise.
const DefaultCompletionPromise = "LOOP_COMPLETE"

// DefaultStartingEvent is the seed topic used when the config omits
// event_loop.starting_event.
const DefaultStartingEvent = "task.start"

// LoopConfig holds the event_loop.* settings that govern one run.
type LoopConfig struct {
	// CompletionPromise is the literal sentinel string watched for in
	// agent output. Defaults to DefaultCompletionPromise.
	CompletionPromise string

	// MaxIterations bounds the number of subprocess invocations. Zero
	// means unbounded.
	MaxIterations int

	// MaxRuntimeSeconds bounds wall-clock time since loop start. Zero
	// means unbounded.
	MaxRuntimeSeconds int

	// MaxCostUSD bounds cumulative executor-reported cost. Zero means
	// unbounded (also the behavior when the backend never reports cost).
	MaxCostUSD float64

	// MaxConsecutiveFailures bounds the run of back-to-back failed
	// iterations before the loop gives up. Zero means unbounded.
	MaxConsecutiveFailures int

	// CheckpointInterval triggers a Checkpointer call every N iterations.
	// Zero disables checkpointing.
	CheckpointInterval int

	// IdleTimeoutSecs bounds the time since the last successful
	// iteration. Zero means unbounded.
	IdleTimeoutSecs int

	// StartingEvent is the seed topic published from Idle. Defaults to
	// DefaultStartingEvent.
	StartingEvent string
}

// WithDefaults returns a copy of c with zero-value optional fields
// replaced by their documented defaults.
func (c LoopConfig) WithDefaults() LoopConfig {
	if c.CompletionPromise == "" {
		c.CompletionPromise = DefaultCompletionPromise
	}
	if c.StartingEvent == "" {
		c.StartingEvent = DefaultStartingEvent
	}
	return c
}

func (c LoopConfig) maxRuntime() time.Duration {
	return time.Duration(c.MaxRuntimeSeconds) * time.Second
}

func (c LoopConfig) idleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSecs) * time.Second
}
