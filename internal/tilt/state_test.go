package tilt

import (
	"sync"
	"testing"
)

func TestStateAppliesBothAxes(t *testing.T) {
	s := &State{}

	s.Apply(Update{Action: Positive, Level: 2}, Update{Action: Negative, Level: 1})
	want := Levels{X: AxisLevels{Pos: 2}, Y: AxisLevels{Neg: 1}}
	if got := s.Snapshot(); got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}

	s.Apply(Update{Action: Hold}, Update{Action: Clear})
	want = Levels{X: AxisLevels{Pos: 2}}
	if got := s.Snapshot(); got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}
	if s.Snapshot().Zero() {
		t.Error("state with a level reports zero")
	}
}

// Every write moves both axes together, so a reader must never observe
// the X level of one tick paired with the Y level of another.
func TestSnapshotNeverTears(t *testing.T) {
	s := &State{}
	const ticks = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < ticks; i++ {
			level := i%MaxLevel + 1
			s.Apply(Update{Action: Positive, Level: level}, Update{Action: Negative, Level: level})
		}
	}()

	for i := 0; i < ticks; i++ {
		l := s.Snapshot()
		if l.X.Pos != l.Y.Neg {
			t.Fatalf("torn snapshot: %+v", l)
		}
		if l.X.Neg != 0 || l.Y.Pos != 0 {
			t.Fatalf("both directions set: %+v", l)
		}
	}
	wg.Wait()
}
