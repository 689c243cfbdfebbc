package sensors

import (
	"errors"
	"testing"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/accel"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

const testAddr = MMA8451DefaultAddr

func TestInitConfiguresOnIdentityMatch(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: testAddr, W: []byte{regWhoAmI}, R: []byte{mma8451ID}},
			{Addr: testAddr, W: []byte{regCtrlReg1, ctrl1Active}},
		},
	}
	dev := NewMMA8451(bus, testAddr)

	if err := dev.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("not every expected transfer happened: %v", err)
	}
}

func TestInitRefusesWrongIdentity(t *testing.T) {
	// Only the identity query is expected: a mismatched device must not be configured.
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: testAddr, W: []byte{regWhoAmI}, R: []byte{0x2A}},
		},
	}
	dev := NewMMA8451(bus, testAddr)

	err := dev.Init()
	if !errors.Is(err, ErrDeviceIdentity) {
		t.Fatalf("Init error = %v, want ErrDeviceIdentity", err)
	}
	if errors.Is(err, ErrBusTransaction) {
		t.Error("identity mismatch must not be reported as a bus failure")
	}
	if err := bus.Close(); err != nil {
		t.Errorf("unexpected transfers: %v", err)
	}
}

func TestReadAccDecodesBurst(t *testing.T) {
	burst := make([]byte, 0, burstLen)
	for _, v := range []int16{1234, -4096, accel.Min14} {
		hi, lo := accel.Pack14(v)
		burst = append(burst, hi, lo)
	}
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: testAddr, W: []byte{regOutXMSB}, R: burst},
		},
	}
	dev := NewMMA8451(bus, testAddr)

	if err := dev.ReadAcc(); err != nil {
		t.Fatalf("ReadAcc: %v", err)
	}
	if dev.AccX() != 1234 || dev.AccY() != -4096 || dev.AccZ() != accel.Min14 {
		t.Errorf("got x=%d y=%d z=%d, want 1234 -4096 %d", dev.AccX(), dev.AccY(), dev.AccZ(), accel.Min14)
	}
}

// failingBus rejects every transfer.
type failingBus struct{}

func (failingBus) String() string                    { return "failing" }
func (failingBus) Tx(addr uint16, w, r []byte) error { return errors.New("nack") }
func (failingBus) SetSpeed(f physic.Frequency) error { return nil }

func TestBusFailureIsDistinct(t *testing.T) {
	dev := NewMMA8451(failingBus{}, testAddr)

	if err := dev.Init(); !errors.Is(err, ErrBusTransaction) {
		t.Errorf("Init error = %v, want ErrBusTransaction", err)
	}
	if err := dev.ReadAcc(); !errors.Is(err, ErrBusTransaction) {
		t.Errorf("ReadAcc error = %v, want ErrBusTransaction", err)
	}
}

func TestMockStartsLevel(t *testing.T) {
	now := time.Unix(1000, 0)
	m := NewMockMMA()
	m.now = func() time.Time { return now }

	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := m.ReadAcc(); err != nil {
		t.Fatalf("ReadAcc: %v", err)
	}
	if m.AccX() != 0 || m.AccY() != 0 || m.AccZ() != oneG {
		t.Errorf("at t=0 got x=%d y=%d z=%d, want 0 0 %d", m.AccX(), m.AccY(), m.AccZ(), oneG)
	}

	now = now.Add(3 * time.Second)
	if err := m.ReadAcc(); err != nil {
		t.Fatalf("ReadAcc: %v", err)
	}
	if m.AccX() <= 500 {
		t.Errorf("after 3s x=%d, want a clear positive tilt", m.AccX())
	}
}
