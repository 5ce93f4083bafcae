package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beep-arcade/internal/config"
	"github.com/vovakirdan/beep-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its player count and difficulty presets.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Players", "Difficulty")
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------", "----------")

	// Print games
	for _, g := range games {
		players := "1"
		if game, err := registry.Create(g.ID); err == nil {
			if _, ok := game.(registry.MatchReporter); ok {
				players = "2"
			}
		}
		presets := strings.Join(config.PresetNamesFor(g.ID, ""), ", ")
		if presets == "" {
			presets = "-"
		}
		fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, players, presets)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
