package core

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // simulation steps per second
	Seed     int64 // 0 lets the game pick a fresh seed
}

// DefaultConfig is an 80x24 terminal at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// Normalized fills in a missing tick rate and clamps negative sizes to zero.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	c.ScreenW = max(c.ScreenW, 0)
	c.ScreenH = max(c.ScreenH, 0)
	return c
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score  int
	Lines  int
	Level  int
	Pieces int
	Seed   int64
	// Reason says why the game ended; empty while running.
	Reason   string
	GameOver bool
	Paused   bool
}

// StepResult is what one Step produced.
type StepResult struct {
	State GameState
	// Cleared is the number of lines removed during this step.
	Cleared int
	// Action names the scoring action of this step, e.g. "T-Spin Double".
	Action string
}
