package core

import "time"

// DefaultTickInterval is the fixed time between two moves.
const DefaultTickInterval = 100 * time.Millisecond

// RuntimeConfig contains configuration passed to a game session at initialization.
type RuntimeConfig struct {
	Board        Board         // Play field geometry
	TickInterval time.Duration // Time between ticks
	Seed         int64         // RNG seed for deterministic gameplay (0 = time based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Board:        DefaultBoard(),
		TickInterval: DefaultTickInterval,
		Seed:         0, // 0 means use current time in platform layer
	}
}
