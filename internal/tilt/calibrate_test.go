package tilt

import (
	"errors"
	"testing"

	"github.com/relabs-tech/tilt_indicator/internal/indicator"
	"github.com/relabs-tech/tilt_indicator/internal/indicator/indicatortest"
)

func TestCalibrateConstantInput(t *testing.T) {
	r := constantReader(-321, 777)

	ref, err := Calibrate(r)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if ref != (Reference{X: -321, Y: 777}) {
		t.Errorf("reference = %+v, want {-321 777}", ref)
	}
	if r.n != CalibrationSamples {
		t.Errorf("read %d samples, want %d", r.n, CalibrationSamples)
	}
}

func TestCalibrateTruncates(t *testing.T) {
	r := &fakeReader{
		xs: []int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},          // 55 / 10
		ys: []int16{-1, -2, -3, -4, -5, -6, -7, -8, -9, -9}, // -54 / 10
	}

	ref, err := Calibrate(r)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if ref != (Reference{X: 5, Y: -5}) {
		t.Errorf("reference = %+v, want {5 -5}", ref)
	}
}

func TestCalibratorAcknowledges(t *testing.T) {
	clk := &indicatortest.Clock{}
	rec := &indicatortest.Recorder{Clock: clk}
	c := &Calibrator{Reader: constantReader(10, 20), Indicator: rec, Clock: clk}

	ref, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ref != (Reference{X: 10, Y: 20}) {
		t.Errorf("reference = %+v", ref)
	}

	want := []indicator.Color{indicator.White, indicator.Off, indicator.White, indicator.Off}
	got := rec.Colors()
	if len(got) != len(want) {
		t.Fatalf("ack colors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ack[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if clk.Elapsed() != 4*AckPhase {
		t.Errorf("ack took %v, want %v", clk.Elapsed(), 4*AckPhase)
	}
}

func TestCalibratorStopsOnReadError(t *testing.T) {
	rec := &indicatortest.Recorder{}
	c := &Calibrator{
		Reader:    &fakeReader{xs: []int16{0}, ys: []int16{0}, fail: map[int]bool{3: true}},
		Indicator: rec,
		Clock:     &indicatortest.Clock{},
	}

	if _, err := c.Run(); !errors.Is(err, errNack) {
		t.Fatalf("Run error = %v, want %v", err, errNack)
	}
	if len(rec.Events()) != 0 {
		t.Errorf("indicator touched after failed calibration: %v", rec.Colors())
	}
}
