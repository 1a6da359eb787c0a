package orchestrator

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FinalSummary renders the human-readable line emitted when a run
// terminates: the reason, iteration count, elapsed time, and cumulative
// cost if any was tracked.
func FinalSummary(reason TerminationReason, iterations int, elapsed time.Duration, costUSD float64) string {
	line := fmt.Sprintf("loop terminated: reason=%s iterations=%s elapsed=%s",
		reason, humanize.Comma(int64(iterations)), elapsed.Round(time.Second))
	if costUSD > 0 {
		line += fmt.Sprintf(" cost=$%s", humanize.Commaf(costUSD))
	}
	return line
}
