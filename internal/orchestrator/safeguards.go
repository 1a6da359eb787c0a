package orchestrator

import "time"

// checkSafeguards evaluates the bounds in the exact precedence order the
// design requires: iterations, runtime, cost, consecutive failures, idle.
// The first bound that has tripped wins; later bounds are not evaluated.
// A zero-valued limit means "unbounded" for that dimension.
func checkSafeguards(cfg LoopConfig, st *LoopState, now time.Time) TerminationReason {
	if cfg.MaxIterations > 0 && st.Iteration >= cfg.MaxIterations {
		return ReasonIterations
	}
	if cfg.MaxRuntimeSeconds > 0 && now.Sub(st.StartTime) >= cfg.maxRuntime() {
		return ReasonRuntime
	}
	if cfg.MaxCostUSD > 0 && st.CumulativeCostUSD >= cfg.MaxCostUSD {
		return ReasonCost
	}
	if cfg.MaxConsecutiveFailures > 0 && st.ConsecutiveFailures >= cfg.MaxConsecutiveFailures {
		return ReasonFailures
	}
	if cfg.IdleTimeoutSecs > 0 && now.Sub(st.LastSuccessTime) >= cfg.idleTimeout() {
		return ReasonIdle
	}
	return ReasonNone
}
