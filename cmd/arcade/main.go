// arcade is a terminal arcade with beeping games: Checkers, Pong and Snake.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade scores <game>     - Show high scores or recent matches for a game
//	arcade console           - Play checkers in line mode
//	arcade tones <game>      - Write the game's sound cues as WAV files
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--mute              - Start with sound off
//	--log-file <path>   - Log destination (default: ~/.arcade/arcade.log)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/core"
	"github.com/vovakirdan/beep-arcade/internal/logging"
	"github.com/vovakirdan/beep-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/beep-arcade/internal/games/checkers"
	_ "github.com/vovakirdan/beep-arcade/internal/games/pong"
	_ "github.com/vovakirdan/beep-arcade/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagMute     bool
	flagLogFile  string
	flagLogLevel string

	logCloser io.Closer
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Beep Arcade - Checkers, Pong and Snake in your terminal",
	Long: `Beep Arcade is a terminal arcade with three small games that beep:
two-player Checkers with a power-up square, two-player Pong and Snake.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View high scores and recent matches
  console  - Line-mode checkers
  tones    - Export sound cues as WAV files

Examples:
  arcade list
  arcade play checkers --left ann --right bob
  arcade play snake --difficulty fast
  arcade menu
  arcade scores pong`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		_, closer, err := logging.Setup(flagLogFile, flagLogLevel)
		if closer == nil {
			return err // bad level
		}
		logCloser = closer
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", logging.DefaultPath, "Log file (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(tonesCmd)
}

// newSound rings the terminal bell for every cue and logs it at debug.
func newSound() *audio.Switch {
	return audio.NewSwitch(audio.Multi{
		audio.NewBell(os.Stderr),
		audio.NewLogEmitter(log.WithPrefix("cue")),
	}, flagMute)
}

// openStore opens the score database. Failure degrades to no persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		log.Warn("storage unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// runtimeConfig builds the runtime config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
