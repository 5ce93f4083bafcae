package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beep-arcade/internal/registry"
	"github.com/vovakirdan/beep-arcade/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
	flagScoresPlayer     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores or recent matches for a game",
	Long: `Display the top scores for a single-player game, or the most recent
matches for a two-player game.

Examples:
  arcade scores snake
  arcade scores snake --difficulty fast
  arcade scores checkers --player ann`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show scores for this difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show matches with this player")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if _, ok := game.(registry.MatchReporter); ok {
		err = printMatches(store, gameID, game.Title())
	} else {
		err = printScores(store, gameID, game.Title())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, flagScoresDifficulty, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Rank", "Score", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "----", "-----", "----------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-10s  %s\n", i+1, entry.Score, entry.Difficulty, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(gameID, flagScoresDifficulty); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printMatches(store *storage.Store, gameID, title string) error {
	var (
		matches []storage.MatchResult
		err     error
	)
	if flagScoresPlayer != "" {
		var all []storage.MatchResult
		all, err = store.PlayerMatches(flagScoresPlayer, flagScoresLimit)
		for _, m := range all {
			if m.GameID == gameID {
				matches = append(matches, m)
			}
		}
	} else {
		matches, err = store.RecentMatches(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Recent Matches - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-24s  %-7s  %-12s  %-6s  %s\n", "Players", "Score", "Winner", "Moves", "Date")
	fmt.Printf("  %-24s  %-7s  %-12s  %-6s  %s\n", "-------", "-----", "------", "-----", "----")

	for _, m := range matches {
		players := fmt.Sprintf("%s v %s", m.LeftName, m.RightName)
		score := fmt.Sprintf("%d-%d", m.Score1, m.Score2)
		fmt.Printf("  %-24s  %-7s  %-12s  %-6d  %s\n",
			players, score, m.Winner, m.Moves, m.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Matches played: %d\n", stats.Matches)
	}
	return nil
}
