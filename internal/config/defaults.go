package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the guideline configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Randomizer: RandomizerConfig{Fair: true},
		Hold:       HoldConfig{Enabled: true},
		Timing: TimingConfig{
			FallIntervalMS: 1000,
			LockDelayMS:    500,
			MaxLockMoves:   15,
			SoftDropFactor: 20,
		},
		Preview: PreviewConfig{Depth: 7},
		Level: LevelConfig{
			Start: 1,
			Cap:   15,
		},
	}
}
