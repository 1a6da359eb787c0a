package orchestrator

import (
	"testing"
	"time"
)

func TestCheckSafeguards_Precedence(t *testing.T) {
	now := time.Now()
	start := now.Add(-time.Hour)

	// All five bounds are tripped simultaneously; iterations must win.
	cfg := LoopConfig{
		MaxIterations:          1,
		MaxRuntimeSeconds:      1,
		MaxCostUSD:             1,
		MaxConsecutiveFailures: 1,
		IdleTimeoutSecs:        1,
	}
	st := &LoopState{
		Iteration:           1,
		StartTime:           start,
		LastSuccessTime:      start,
		ConsecutiveFailures: 1,
		CumulativeCostUSD:   2,
	}

	if got := checkSafeguards(cfg, st, now); got != ReasonIterations {
		t.Errorf("checkSafeguards() = %v, want %v", got, ReasonIterations)
	}
}

func TestCheckSafeguards_RuntimeBeforeCostWhenIterationsNotTripped(t *testing.T) {
	now := time.Now()
	start := now.Add(-time.Hour)

	cfg := LoopConfig{
		MaxRuntimeSeconds: 1,
		MaxCostUSD:        1,
	}
	st := &LoopState{
		StartTime:         start,
		LastSuccessTime:    start,
		CumulativeCostUSD: 2,
	}

	if got := checkSafeguards(cfg, st, now); got != ReasonRuntime {
		t.Errorf("checkSafeguards() = %v, want %v", got, ReasonRuntime)
	}
}

func TestCheckSafeguards_NoneTripped(t *testing.T) {
	now := time.Now()
	cfg := LoopConfig{MaxIterations: 10}
	st := &LoopState{Iteration: 1, StartTime: now, LastSuccessTime: now}

	if got := checkSafeguards(cfg, st, now); got != ReasonNone {
		t.Errorf("checkSafeguards() = %v, want ReasonNone", got)
	}
}

func TestCheckSafeguards_ZeroLimitsAreUnbounded(t *testing.T) {
	now := time.Now()
	st := &LoopState{Iteration: 1000, StartTime: now.Add(-999 * time.Hour), LastSuccessTime: now.Add(-999 * time.Hour), CumulativeCostUSD: 999}

	if got := checkSafeguards(LoopConfig{}, st, now); got != ReasonNone {
		t.Errorf("checkSafeguards() = %v, want ReasonNone for all-zero config", got)
	}
}

func TestCheckSafeguards_ConsecutiveFailures(t *testing.T) {
	now := time.Now()
	cfg := LoopConfig{MaxConsecutiveFailures: 2}
	st := &LoopState{StartTime: now, LastSuccessTime: now, ConsecutiveFailures: 2}

	if got := checkSafeguards(cfg, st, now); got != ReasonFailures {
		t.Errorf("checkSafeguards() = %v, want %v", got, ReasonFailures)
	}
}

func TestCheckSafeguards_Idle(t *testing.T) {
	now := time.Now()
	cfg := LoopConfig{IdleTimeoutSecs: 10}
	st := &LoopState{StartTime: now.Add(-time.Minute), LastSuccessTime: now.Add(-20 * time.Second)}

	if got := checkSafeguards(cfg, st, now); got != ReasonIdle {
		t.Errorf("checkSafeguards() = %v, want %v", got, ReasonIdle)
	}
}
