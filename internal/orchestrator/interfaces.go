package orchestrator

import "io"

// OutputSink receives the raw, unmodified byte stream produced by every
// iteration's child process, in arrival order. Writes are treated as
// infallible from the executor's perspective: a sink that wants to apply
// backpressure or drop bytes (e.g. a bounded TUI buffer) does so inside
// its own Write implementation, not by returning an error the core acts
// on. Raw terminal passthrough implementations must not drop bytes.
type OutputSink interface {
	io.Writer
}

// CheckpointSnapshot is the run state handed to a Checkpointer. Reason
// names why the checkpoint fired ("interval" today; future callers may
// checkpoint on other triggers).
type CheckpointSnapshot struct {
	Iteration           int
	Reason              string
	ConsecutiveFailures int
	CumulativeCostUSD   float64
	ElapsedSeconds      float64
}

// Checkpointer is invoked every CheckpointInterval iterations so an
// external component can persist whatever state it tracks (e.g. a session
// recording). A Checkpointer failure is logged but never stops the loop.
type Checkpointer interface {
	Checkpoint(snapshot CheckpointSnapshot) error
}

// ConfigProvider yields a validated LoopConfig. Implementations
// are responsible for surfacing config-invalid errors before the loop
// starts; the orchestrator never spawns a subprocess on a provider error.
type ConfigProvider interface {
	LoopConfig() LoopConfig
}

// NopCheckpointer discards every checkpoint request. It is the default
// when no external checkpoint store is configured.
type NopCheckpointer struct{}

// Checkpoint implements Checkpointer.
func (NopCheckpointer) Checkpoint(snapshot CheckpointSnapshot) error { return nil }
