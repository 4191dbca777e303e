// tetris is a terminal falling-block puzzle game with guideline rules:
// SRS rotation, 7-bag randomizer, hold, lock delay and T-spin scoring.
//
// Usage:
//
//	tetris play      - Play in this terminal
//	tetris serve     - Start SSH server for remote play
//	tetris config    - Print the effective gameplay configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible piece sequences
//	--config <path>       - Use a custom gameplay config YAML
//	--difficulty <name>   - Apply a difficulty preset: easy, normal, hard, fixed
//	--debug               - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `A terminal falling-block puzzle game following the modern guideline:
SRS rotation with wall kicks, 7-bag randomizer, hold, ghost piece,
lock delay and T-spin scoring.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  config   - Print the effective gameplay configuration

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --seed 42
  tetris serve --ssh :2222
  tetris config --config ./my-tetris.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, or random)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
