package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// loadConfig loads the gameplay config and applies the difficulty and seed flags.
func loadConfig() (config.TetrisConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, err
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, err
	}

	config.ApplyTetrisPreset(&cfg, preset)
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg, nil
}

// openDebugLog returns a logger writing to ~/.tetris/debug.log when --debug
// is set, or a discarding logger otherwise. The terminal belongs to the game.
func openDebugLog() (*log.Logger, io.Closer, error) {
	if !flagDebug {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".tetris")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open debug log: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "tetris",
	})
	return logger, f, nil
}
