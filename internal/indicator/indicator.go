// Package indicator drives the tri-color status LED.
package indicator

import (
	"fmt"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/clock"
)

// Color is the logical on/off state of the three channels.
// Electrical polarity is handled by the Indicator implementation.
type Color struct {
	Red   bool
	Green bool
	Blue  bool
}

var (
	Off   = Color{}
	White = Color{Red: true, Green: true, Blue: true}
	Red   = Color{Red: true}
	Green = Color{Green: true}
	Blue  = Color{Blue: true}
)

func (c Color) String() string {
	return fmt.Sprintf("R%d G%d B%d", b2i(c.Red), b2i(c.Green), b2i(c.Blue))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Indicator shows a Color until the next Set.
type Indicator interface {
	Set(c Color) error
}

// Blink shows c for phase, then Off for phase, times times.
func Blink(ind Indicator, clk clock.Clock, c Color, phase time.Duration, times int) error {
	for i := 0; i < times; i++ {
		if err := ind.Set(c); err != nil {
			return err
		}
		clk.Sleep(phase)
		if err := ind.Set(Off); err != nil {
			return err
		}
		clk.Sleep(phase)
	}
	return nil
}
