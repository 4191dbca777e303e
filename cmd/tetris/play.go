package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Left/Right, A/D   - Move
  Up, X             - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Down, S           - Soft drop (hold)
  Space             - Hard drop
  C                 - Hold
  P/Esc             - Pause
  Tab               - Session results (paused or after game over)
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Long lock delay, more lock moves, levels 1-10
  normal - Guideline timing, levels 1-15
  hard   - Starts at level 5, short lock delay, levels up to 20
  fixed  - No progression, stays at the configured start level

Examples:
  tetris play
  tetris play --difficulty easy
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := tetris.OptionsFromConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := openDebugLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, logFile = nil, nil
	}
	if logFile != nil {
		defer logFile.Close()
	}

	tetris.Configure(tetris.Settings{Config: cfg, Logger: logger})

	// Size the first frame to the terminal when we can
	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	rc = rc.Normalized()

	game, err := registry.Create(tetris.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Results live for this process only
	store, err := storage.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results store: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, rc, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
