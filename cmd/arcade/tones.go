package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beep-arcade/internal/audio"
	"github.com/vovakirdan/beep-arcade/internal/games/checkers"
	"github.com/vovakirdan/beep-arcade/internal/games/pong"
	"github.com/vovakirdan/beep-arcade/internal/games/snake"
)

var flagTonesOut string

// toneBanks maps game IDs to their cue tones.
var toneBanks = map[string]audio.Bank{
	"checkers": checkers.Tones,
	"pong":     pong.Tones,
	"snake":    snake.Tones,
}

var tonesCmd = &cobra.Command{
	Use:   "tones <game>",
	Short: "Write a game's sound cues as WAV files",
	Long: `Synthesize every sound cue of a game and write one WAV file per cue
(8 kHz, mono, 16-bit) named <game>_<cue>.wav.

Examples:
  arcade tones checkers
  arcade tones snake --out ./sounds`,
	Args: cobra.ExactArgs(1),
	RunE: runTones,
}

func init() {
	tonesCmd.Flags().StringVar(&flagTonesOut, "out", ".", "Output directory")
}

func runTones(_ *cobra.Command, args []string) error {
	gameID := args[0]
	bank, ok := toneBanks[gameID]
	if !ok {
		return fmt.Errorf("no tones for game %q", gameID)
	}

	if err := os.MkdirAll(flagTonesOut, 0o755); err != nil {
		return fmt.Errorf("tones: %w", err)
	}

	for _, cue := range bank.Cues() {
		path := filepath.Join(flagTonesOut, fmt.Sprintf("%s_%s.wav", gameID, cue))
		if err := writeTone(path, bank[cue]); err != nil {
			return err
		}
		fmt.Printf("  %-24s %4.0f Hz  %v\n", path, bank[cue].Freq, bank[cue].Duration)
	}
	return nil
}

func writeTone(path string, t audio.Tone) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tones: %w", err)
	}
	if err := audio.WriteWAV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("tones: %s: %w", path, err)
	}
	return f.Close()
}
