package core

// RuntimeConfig is handed to a game on every Reset.
// Games use it to lay out the screen and seed their randomness.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform
	Seed     int64 // RNG seed, 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 FPS.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// FrameMillis returns the simulated time of one frame.
func (c RuntimeConfig) FrameMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60
	}
	return 1000.0 / float64(c.TickRate)
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score     int
	Lines     int
	Level     int
	SessionID string // changes on every restart, tags saved scores
	GameOver  bool
	Paused    bool
}

// StepResult is returned by Game.Step after each frame.
type StepResult struct {
	State GameState
	// Cleared is the number of rows removed during this frame.
	Cleared int
}
