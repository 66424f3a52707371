// README: Step state machine tests.
package conversation

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Step
		want     bool
	}{
		{StepInitial, StepCollecting, true},
		{StepInitial, StepConfirming, true},
		{StepInitial, StepComplete, true},
		{StepCollecting, StepCollecting, true},
		{StepCollecting, StepConfirming, true},
		{StepConfirming, StepCollecting, true},
		{StepConfirming, StepComplete, true},
		{StepComplete, StepCollecting, false},
		{StepComplete, StepConfirming, false},
		{StepComplete, StepComplete, false},
		{Step("bogus"), StepCollecting, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestNextStep(t *testing.T) {
	cases := []struct {
		name      string
		current   Step
		complete  bool
		suggested string
		want      Step
	}{
		{"completeness wins over suggestion", StepCollecting, true, "collecting", StepComplete},
		{"suggestion honored", StepCollecting, false, "confirming", StepConfirming},
		{"no suggestion defaults to collecting", StepInitial, false, "", StepCollecting},
		{"garbage suggestion defaults to collecting", StepConfirming, false, "teleporting", StepCollecting},
		{"complete suggestion is never advisory", StepCollecting, false, "complete", StepCollecting},
		{"complete is terminal", StepComplete, false, "collecting", StepComplete},
		{"complete stays complete even when flagged complete", StepComplete, true, "", StepComplete},
	}
	for _, tc := range cases {
		if got := NextStep(tc.current, tc.complete, tc.suggested); got != tc.want {
			t.Errorf("%s: NextStep(%s, %v, %q) = %s, want %s", tc.name, tc.current, tc.complete, tc.suggested, got, tc.want)
		}
	}
}
