package domain

import "testing"

func TestIndicatorStateSummary(t *testing.T) {
	tests := []struct {
		state IndicatorState
		want  string
	}{
		{state: IndicatorState{Level: 3, BarCount: 5, Connected: true}, want: "Signal 3/5 (fair), connected"},
		{state: IndicatorState{Level: 5, BarCount: 5, Connected: false}, want: "Signal 5/5 (unknown), disconnected"},
	}

	for _, tt := range tests {
		if got := tt.state.Summary(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}
