package tilt

import "errors"

// fakeReader replays X/Y pairs; after the script ends it repeats the last pair.
type fakeReader struct {
	xs, ys []int16
	n      int
	fail   map[int]bool // read numbers (1-based) that fail
}

var errNack = errors.New("nack")

func constantReader(x, y int16) *fakeReader {
	return &fakeReader{xs: []int16{x}, ys: []int16{y}}
}

func (r *fakeReader) ReadAcc() error {
	r.n++
	if r.fail[r.n] {
		return errNack
	}
	return nil
}

func (r *fakeReader) idx() int {
	i := r.n - 1
	if i >= len(r.xs) {
		i = len(r.xs) - 1
	}
	return i
}

func (r *fakeReader) AccX() int16 { return r.xs[r.idx()] }
func (r *fakeReader) AccY() int16 { return r.ys[r.idx()] }
func (r *fakeReader) AccZ() int16 { return 4096 }
