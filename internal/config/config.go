// Package config provides YAML-based gameplay configuration loading and
// difficulty presets for the tetris engine.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TetrisConfig contains all configuration for a tetris session.
type TetrisConfig struct {
	Randomizer RandomizerConfig `yaml:"randomizer"`
	Hold       HoldConfig       `yaml:"hold"`
	Timing     TimingConfig     `yaml:"timing"`
	Preview    PreviewConfig    `yaml:"preview"`
	Level      LevelConfig      `yaml:"level"`
	Seed       int64            `yaml:"seed"` // 0 = new seed every game
}

// RandomizerConfig selects the piece sequencer.
type RandomizerConfig struct {
	Fair bool `yaml:"fair"` // 7-bag when true, uniform draws otherwise
}

// HoldConfig toggles the hold slot.
type HoldConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TimingConfig defines gravity and lock-delay parameters.
type TimingConfig struct {
	FallIntervalMS int `yaml:"fall_interval_ms"` // gravity interval at level 1
	LockDelayMS    int `yaml:"lock_delay_ms"`
	MaxLockMoves   int `yaml:"max_lock_moves"`
	SoftDropFactor int `yaml:"soft_drop_factor"`
}

// PreviewConfig defines the next-queue length.
type PreviewConfig struct {
	Depth int `yaml:"depth"`
}

// LevelConfig defines the starting level and the progression cap.
type LevelConfig struct {
	Start int `yaml:"start"`
	Cap   int `yaml:"cap"`
}

// Marshal renders the config as YAML.
func (c TetrisConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and
// means "use the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// IsFixedPreset returns true if the preset disables level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
