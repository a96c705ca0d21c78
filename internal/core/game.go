package core

// Game is the contract between a game implementation and the platform layer.
// The platform drives the game with a fixed tick: each tick it calls Step with
// the frame's input, then Render into a screen buffer it owns.
type Game interface {
	// ID returns a unique identifier (used for persistence keys).
	ID() string

	// Title returns a human-readable display name.
	Title() string

	// Reset initializes or restarts the game with the given configuration.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(input InputFrame) StepResult

	// Render draws the current game state into the screen buffer.
	Render(screen *Screen)

	// Status reports the current externally visible state.
	Status() Status
}
