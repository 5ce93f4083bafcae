package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/beep-arcade/internal/config"
	"github.com/vovakirdan/beep-arcade/internal/platform/tui"
	"github.com/vovakirdan/beep-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLeft       string
	flagRight      string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move cursor, paddle or snake
  Enter/Space  - Select and move a checker (mouse drag works too)
  W/S, Up/Down - Left and right Pong paddles
  P            - Pause
  R            - Restart
  M            - Mute
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Pong and Snake read difficulty presets from YAML. Without --difficulty a
selector is shown.

Examples:
  arcade play checkers --left ann --right bob
  arcade play pong --difficulty insane
  arcade play snake --difficulty fast
  arcade play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (see the game's config)")
	playCmd.Flags().StringVar(&flagLeft, "left", "", "Name of the left/red player")
	playCmd.Flags().StringVar(&flagRight, "right", "", "Name of the right/black player")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := runtimeConfig()
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty
	cfg.Players = []string{flagLeft, flagRight}

	if presets := config.PresetNamesFor(gameID, flagConfig); len(presets) > 0 {
		if cfg.Difficulty == "" {
			name, ok, err := tui.RunDifficultySelector(gameID, presets, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			// User pressed back or quit
			if !ok {
				return
			}
			cfg.Difficulty = name
		} else if !slices.Contains(presets, cfg.Difficulty) {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q for %s (have %v)\n", cfg.Difficulty, gameID, presets)
			os.Exit(1)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	log.Info("game start", "game", gameID, "difficulty", cfg.Difficulty, "seed", cfg.Seed)

	// Run the game
	_, runErr := tui.Run(game, store, cfg, newSound())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
