package indicator

import (
	"log"
	"sync"
)

// Console logs color changes instead of driving hardware.
type Console struct {
	mu   sync.Mutex
	last Color
	seen bool
}

func (c *Console) Set(color Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen && color == c.last {
		return nil
	}
	c.last, c.seen = color, true
	log.Printf("led: %s", color)
	return nil
}
