package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDelta returns the simulated wall-clock duration of one tick in
// milliseconds. Non-positive tick rates fall back to 60 ticks per second.
func (c RuntimeConfig) FrameDelta() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return float64(time.Second/time.Millisecond) / float64(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// RunSummary describes a finished run for the scoreboard.
type RunSummary struct {
	Score    int
	Height   int
	MaxCombo int
	Seed     int64
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
