package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective gameplay configuration",
	Long: `Print the gameplay configuration as YAML after the config search,
the difficulty preset and the seed flag have been applied.

The output is a valid config file:
  tetris config --difficulty hard > ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(data))

	if _, err := tetris.OptionsFromConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		os.Exit(1)
	}
}
