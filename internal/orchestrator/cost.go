package orchestrator

import "github.com/tidwall/gjson"

// costEventTopic is the convention an agent uses to self-report spend for
// an iteration: <event topic="meta.cost">{"usd": 0.0123}</event>.
const costEventTopic = "meta.cost"

// extractCostUSD reads the "usd" field out of a meta.cost event payload.
// Backends that never emit this event simply never advance the cumulative
// total, which is the documented "effectively unbounded" behavior for
// max_cost_usd.
func extractCostUSD(payload string) (float64, bool) {
	if !gjson.Valid(payload) {
		return 0, false
	}
	result := gjson.Get(payload, "usd")
	if !result.Exists() {
		return 0, false
	}
	return result.Float(), true
}
