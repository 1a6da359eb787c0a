package orchestrator

import "testing"

func TestExtractCostUSD(t *testing.T) {
	cases := []struct {
		payload string
		want    float64
		wantOK  bool
	}{
		{`{"usd": 0.0123}`, 0.0123, true},
		{`{"usd": 1}`, 1, true},
		{`not json`, 0, false},
		{`{"other": 1}`, 0, false},
		{``, 0, false},
	}
	for _, c := range cases {
		got, ok := extractCostUSD(c.payload)
		if ok != c.wantOK {
			t.Errorf("extractCostUSD(%q) ok = %v, want %v", c.payload, ok, c.wantOK)
			continue
		}
		if ok && got != c.want {
			t.Errorf("extractCostUSD(%q) = %v, want %v", c.payload, got, c.want)
		}
	}
}
