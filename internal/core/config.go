package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
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

// Status reports the externally visible state of a running game.
// Returned by Game.Status() to communicate progress to the platform.
type Status struct {
	Score      int  // Current score
	Lives      int  // Remaining lives
	Answered   int  // Questions answered so far
	Correct    int  // Questions answered correctly
	GameOver   bool // Whether the game has ended
	Paused     bool // Whether the game is paused
	InQuestion bool // Whether a question overlay is currently shown
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	Status Status
}
