// Package filter smooths raw accelerometer samples with a short moving average.
package filter

import "github.com/relabs-tech/tilt_indicator/internal/accel"

// Depth is the number of samples averaged per axis.
const Depth = 4

// Window is a fixed ring of the last Depth samples of one axis.
type Window struct {
	buf [Depth]int16
}

// Mean is the average of the window, truncated toward zero.
func (w *Window) Mean() int16 {
	sum := 0
	for _, v := range w.buf {
		sum += int(v)
	}
	return int16(sum / Depth)
}

// Filter smooths the X and Y axes. Both windows share one write index,
// advanced once per Push. Not safe for concurrent use.
type Filter struct {
	x, y   Window
	idx    int
	pushed int
}

// Push stores one X/Y pair and returns the smoothed pair.
func (f *Filter) Push(x, y int16) (int16, int16) {
	f.x.buf[f.idx] = x
	f.y.buf[f.idx] = y
	f.idx = (f.idx + 1) % Depth
	if f.pushed < Depth {
		f.pushed++
	}
	return f.x.Mean(), f.y.Mean()
}

// Ready reports whether every slot holds a real sample.
func (f *Filter) Ready() bool {
	return f.pushed == Depth
}

// Prefill fills both windows with Depth fresh readings from r.
func (f *Filter) Prefill(r accel.Reader) error {
	for i := 0; i < Depth; i++ {
		if err := r.ReadAcc(); err != nil {
			return err
		}
		f.Push(r.AccX(), r.AccY())
	}
	return nil
}
