package tilt

import "sync"

// State is the hand-off point between the classifier goroutine (the only
// writer) and its readers. Readers take whole snapshots, never single fields.
type State struct {
	mu     sync.Mutex
	levels Levels
}

// Apply folds one tick's classification of both axes into the state
// under a single lock, so a snapshot never mixes two ticks.
func (s *State) Apply(x, y Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels.X = s.levels.X.Apply(x)
	s.levels.Y = s.levels.Y.Apply(y)
}

// Snapshot copies all four levels in one lock acquisition.
func (s *State) Snapshot() Levels {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels
}
