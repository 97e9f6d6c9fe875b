package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic play; 0 means time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
	}
}

// TicksFor converts a duration into a whole number of ticks, rounding up so
// that any non-zero delay lasts at least one tick.
func (c RuntimeConfig) TicksFor(d time.Duration) int {
	if d <= 0 || c.TickRate <= 0 {
		return 0
	}
	scaled := int64(d) * int64(c.TickRate)
	return int((scaled + int64(time.Second) - 1) / int64(time.Second))
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
	Status   string // One-line status for the platform footer
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
