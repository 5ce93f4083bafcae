package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	Difficulty string   // Preset name; empty selects the game's default
	ConfigPath string   // Custom preset file; empty uses the search path
	Players    []string // Optional display names, left to right
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

// PlayerName returns the configured name for the i-th player or fallback.
func (c RuntimeConfig) PlayerName(i int, fallback string) string {
	if i >= 0 && i < len(c.Players) && c.Players[i] != "" {
		return c.Players[i]
	}
	return fallback
}

// MillisPerTick returns the simulated time covered by one tick.
func (c RuntimeConfig) MillisPerTick() int {
	if c.TickRate <= 0 {
		return 1000 / 60
	}
	return max(1, 1000/c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// MatchOutcome describes a finished head-to-head game between two local players.
type MatchOutcome struct {
	Left   string
	Right  string
	Score1 int
	Score2 int
	Winner string // Name of the winning player
	Moves  int
}
