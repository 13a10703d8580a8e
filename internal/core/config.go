package core

// RuntimeConfig contains the screen size a session renders into.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the platform-visible status of a session.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Autoplay bool // Whether the AI is driving
}

// StepResult is returned by Session.Step after applying one input frame.
type StepResult struct {
	State GameState
	Moved bool // Whether the board changed
}
