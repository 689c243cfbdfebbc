package tilt

import "testing"

func TestClassify(t *testing.T) {
	const ref = 120

	testCases := map[string]struct {
		current int
		want    Update
	}{
		"InsideDeadzone":      {current: ref + 40, want: Update{Action: Clear}},
		"DeadzoneEdgeNeg":     {current: ref - 49, want: Update{Action: Clear}},
		"DeadzoneBoundary":    {current: ref + 50, want: Update{Action: Hold}},
		"HysteresisGap":       {current: ref - 499, want: Update{Action: Hold}},
		"NegativeEntry":       {current: ref - 500, want: Update{Action: Negative, Level: 1}},
		"NegativeLevelOne":    {current: ref - 600, want: Update{Action: Negative, Level: 1}},
		"PositiveEntry":       {current: ref + 500, want: Update{Action: Positive, Level: 1}},
		"PositiveLevelTwo":    {current: ref + 2048, want: Update{Action: Positive, Level: 2}},
		"PositiveLevelThree":  {current: ref + 3000, want: Update{Action: Positive, Level: 3}},
		"NegativeLevelThree":  {current: ref - 8000, want: Update{Action: Negative, Level: 3}},
		"LevelTwoUpperBound":  {current: ref + 2730, want: Update{Action: Positive, Level: 2}},
		"LevelThreeLowerEdge": {current: ref + 2731, want: Update{Action: Positive, Level: 3}},
		"LevelOneUpperBound":  {current: ref - 2047, want: Update{Action: Negative, Level: 1}},
	}

	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := Classify(tt.current, ref); got != tt.want {
				t.Errorf("Classify(%d, %d) = %+v, want %+v", tt.current, ref, got, tt.want)
			}
		})
	}
}

func TestApplyKeepsOneDirection(t *testing.T) {
	levels := AxisLevels{}

	levels = levels.Apply(Update{Action: Negative, Level: 1})
	if levels != (AxisLevels{Neg: 1}) {
		t.Fatalf("after negative entry: %+v", levels)
	}

	// The hysteresis gap leaves the previous level untouched.
	levels = levels.Apply(Update{Action: Hold})
	if levels != (AxisLevels{Neg: 1}) {
		t.Fatalf("after hold: %+v", levels)
	}

	// Swinging straight to the other side replaces, never accumulates.
	levels = levels.Apply(Update{Action: Positive, Level: 3})
	if levels != (AxisLevels{Pos: 3}) {
		t.Fatalf("after positive swing: %+v", levels)
	}
	if levels.Total() != 3 {
		t.Errorf("Total = %d, want 3", levels.Total())
	}

	levels = levels.Apply(Update{Action: Clear})
	if levels != (AxisLevels{}) {
		t.Fatalf("after deadzone: %+v", levels)
	}
}

func TestBlinkLevelIsSymmetric(t *testing.T) {
	for diff := 0; diff <= FullScale; diff += 7 {
		if BlinkLevel(diff, 0) != BlinkLevel(-diff, 0) {
			t.Fatalf("BlinkLevel differs for ±%d", diff)
		}
	}
}
