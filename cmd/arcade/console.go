package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/beep-arcade/internal/console"
	"github.com/vovakirdan/beep-arcade/internal/logging"
)

var flagHistory string

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play checkers in line mode",
	Long: `Play two-player checkers by typing moves. Rows and columns run 0-7,
Red starts on rows 5-7 and moves first.

Commands:
  board                    - show the board
  moves <row> <col>        - list destinations for a piece
  move <r1> <c1> <r2> <c2> - slide or jump a piece
  status                   - turn, pieces and power-up
  restart, mute, help, quit

Examples:
  arcade console
  arcade console --seed 42 --mute`,
	Run: runConsole,
}

func init() {
	consoleCmd.Flags().StringVar(&flagHistory, "history", "~/.arcade/console_history", "Command history file (empty disables)")
}

func runConsole(_ *cobra.Command, _ []string) {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	history, err := logging.ExpandHome(flagHistory)
	if err != nil {
		log.Warn("history disabled", "err", err)
		history = ""
	}

	err = console.Run(console.Config{
		Seed:        seed,
		HistoryFile: history,
		Sound:       newSound(),
		Logger:      log.WithPrefix("console"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
