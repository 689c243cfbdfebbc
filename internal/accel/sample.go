package accel

// Sample is a single raw accelerometer reading, in counts.
type Sample struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
	Z int16 `json:"z"`
}

// Reader is a device that latches one reading per ReadAcc call and
// exposes it through the per-axis accessors until the next call.
type Reader interface {
	ReadAcc() error
	AccX() int16
	AccY() int16
	AccZ() int16
}

// Read triggers one reading on r and returns it as a Sample.
func Read(r Reader) (Sample, error) {
	if err := r.ReadAcc(); err != nil {
		return Sample{}, err
	}
	return Sample{X: r.AccX(), Y: r.AccY(), Z: r.AccZ()}, nil
}
