package executor

import (
	"time"

	"github.com/dshills/ralphloop/internal/parser"
)

// FailureKind classifies why an invocation failed. The zero value means the
// invocation succeeded.
type FailureKind string

const (
	// FailureNone indicates a successful invocation.
	FailureNone FailureKind = ""

	// FailureSpawn indicates the child process could not be started.
	FailureSpawn FailureKind = "spawn-failure"

	// FailureIO indicates a read or write on the child's streams failed
	// mid-stream.
	FailureIO FailureKind = "io-failure"

	// FailureTimeout indicates the child exceeded its per-invocation
	// timeout and was killed.
	FailureTimeout FailureKind = "timeout"

	// FailureNonzeroExit indicates the child exited with a nonzero status.
	FailureNonzeroExit FailureKind = "nonzero-exit"

	// FailureInterrupted indicates the invocation was cancelled by an
	// external interruption signal (not a safeguard or timeout).
	FailureInterrupted FailureKind = "interrupted"
)

// Outcome reports the observable facts of one subprocess invocation. The
// executor classifies but never decides loop termination.
type Outcome struct {
	// ExitStatus is the process exit code, or -1 if it never produced one.
	ExitStatus int

	// Failed is true unless the process exited zero without being killed.
	Failed bool

	// FailureReason classifies a failed outcome; FailureNone otherwise.
	FailureReason FailureKind

	// KilledByTimeout is true if the per-invocation timeout fired.
	KilledByTimeout bool

	// Interrupted is true if an external cancellation (not a timeout)
	// stopped the child.
	Interrupted bool

	// EventsExtracted holds every well-formed <event> marker found in the
	// child's merged output, in source order.
	EventsExtracted []parser.ExtractedEvent

	// CompletionDetected is true if the configured sentinel appeared
	// anywhere in the child's output.
	CompletionDetected bool

	// ParseWarnings holds diagnostics for malformed markers.
	ParseWarnings []string

	// Elapsed is the wall-clock duration of the invocation.
	Elapsed time.Duration
}
