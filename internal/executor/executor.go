package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/dshills/ralphloop/internal/parser"
)

// Sentinel errors for the executor package.
var (
	// ErrSpawnFailed is returned when the child process could not be started.
	ErrSpawnFailed = errors.New("executor: failed to start child process")
)

// syncWriter serializes writes from the child's stdout and stderr pipes,
// which exec.Cmd copies on separate goroutines when Stdout/Stderr are set
// to a plain io.Writer.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Executor runs one configured CLI backend.
type Executor struct {
	cfg      Config
	sentinel string
	logger   zerolog.Logger
}

// New creates an Executor for the given backend configuration. sentinel is
// the completion-promise string the output parser watches for; it comes
// from the loop's configuration, not the backend's.
func New(cfg Config, sentinel string, logger zerolog.Logger) *Executor {
	return &Executor{cfg: cfg, sentinel: sentinel, logger: logger}
}

// Run spawns the configured command, delivers prompt per the configured
// PromptMode, forwards the child's merged stdout+stderr to sink byte for
// byte, and extracts events and the completion sentinel concurrently.
//
// ctx cancellation is treated as an external interruption: the child is
// terminated using the same escalation as a timeout, and the returned
// Outcome is marked Interrupted rather than KilledByTimeout.
func (e *Executor) Run(ctx context.Context, prompt string, sink io.Writer) (Outcome, error) {
	start := time.Now()

	args := append([]string{}, e.cfg.Args...)
	if e.cfg.PromptMode == PromptModeArgument {
		if e.cfg.PromptFlag != "" {
			args = append(args, e.cfg.PromptFlag)
		}
		args = append(args, prompt)
	}

	cmd := exec.Command(e.cfg.Command, args...)
	if e.cfg.Env != nil {
		cmd.Env = append(os.Environ(), e.cfg.Env...)
	}
	// Run the child in its own process group so a timeout or interrupt can
	// kill any grandchildren it spawned, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	p := parser.New(e.sentinel)
	out := &syncWriter{w: io.MultiWriter(sink, p)}
	cmd.Stdout = out
	cmd.Stderr = out

	var stdin io.WriteCloser
	if e.cfg.PromptMode == PromptModeStdin {
		var err error
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
		}
	}

	if err := cmd.Start(); err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	if stdin != nil {
		if _, err := io.WriteString(stdin, prompt); err != nil {
			e.logger.Warn().Err(err).Msg("failed writing prompt to child stdin")
		}
		_ = stdin.Close()
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	waitErr, killedByTimeout, interrupted := e.wait(ctx, cmd, done)
	p.Finalize()

	elapsed := time.Since(start)
	exitStatus := -1
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		exitStatus = exitErr.ExitCode()
	} else if waitErr == nil {
		exitStatus = 0
	}

	outcome := Outcome{
		ExitStatus:         exitStatus,
		KilledByTimeout:    killedByTimeout,
		Interrupted:        interrupted,
		EventsExtracted:    p.Events(),
		CompletionDetected: p.CompletionDetected(),
		ParseWarnings:      p.Warnings(),
		Elapsed:            elapsed,
	}

	switch {
	case interrupted:
		outcome.Failed = true
		outcome.FailureReason = FailureInterrupted
	case killedByTimeout:
		outcome.Failed = true
		outcome.FailureReason = FailureTimeout
	case exitStatus != 0:
		outcome.Failed = true
		outcome.FailureReason = FailureNonzeroExit
	}

	return outcome, nil
}

// wait blocks until the child exits, a timeout fires, or ctx is cancelled,
// escalating SIGTERM then SIGKILL (sent to the whole process group) on
// either path.
func (e *Executor) wait(ctx context.Context, cmd *exec.Cmd, done <-chan error) (err error, timedOut bool, interrupted bool) {
	var timeoutC <-chan time.Time
	if e.cfg.Timeout > 0 {
		timer := time.NewTimer(e.cfg.Timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	select {
	case err = <-done:
		return err, false, false
	case <-timeoutC:
		e.escalate(cmd)
		return <-done, true, false
	case <-ctx.Done():
		e.escalate(cmd)
		return <-done, false, true
	}
}

// escalate sends SIGTERM to the child's process group, then SIGKILL if it
// is still alive after the grace period.
func (e *Executor) escalate(cmd *exec.Cmd) {
	pid := cmd.Process.Pid
	_ = unix.Kill(-pid, syscall.SIGTERM)

	grace := time.NewTimer(e.cfg.gracePeriod())
	defer grace.Stop()

	alive := make(chan struct{})
	go func() {
		// A zero-signal kill probe checks liveness without affecting the process.
		for {
			if err := unix.Kill(pid, 0); err != nil {
				close(alive)
				return
			}
			time.Sleep(50 * time.Millisecond)
		}
	}()

	select {
	case <-alive:
	case <-grace.C:
		_ = unix.Kill(-pid, syscall.SIGKILL)
	}
}
