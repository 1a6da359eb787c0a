package orchestrator

import (
	"strings"
	"testing"
	"time"
)

func TestFinalSummary_ContainsReasonAndIterations(t *testing.T) {
	line := FinalSummary(ReasonIterations, 3, 90*time.Second, 0)
	if !strings.Contains(line, "iterations") {
		t.Errorf("summary missing reason: %q", line)
	}
	if !strings.Contains(line, "3") {
		t.Errorf("summary missing iteration count: %q", line)
	}
	if strings.Contains(line, "cost=") {
		t.Errorf("summary should omit cost when zero: %q", line)
	}
}

func TestFinalSummary_IncludesCostWhenNonzero(t *testing.T) {
	line := FinalSummary(ReasonComplete, 1, time.Second, 1.5)
	if !strings.Contains(line, "cost=$1.5") {
		t.Errorf("summary missing cost: %q", line)
	}
}
