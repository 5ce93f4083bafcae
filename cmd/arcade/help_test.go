package main

import (
	"regexp"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beep-arcade/internal/config"
)

var difficultyExample = regexp.MustCompile(`arcade (?:play|scores) (\w+) --difficulty (\w+)`)

func TestHelpExamplesUseKnownPresets(t *testing.T) {
	// Only the embedded presets count
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	seen := 0
	for _, cmd := range []*cobra.Command{rootCmd, playCmd, scoresCmd} {
		matches := difficultyExample.FindAllStringSubmatch(cmd.Long, -1)
		for _, m := range matches {
			seen++
			game, preset := m[1], m[2]
			names := config.PresetNamesFor(game, "")
			if !slices.Contains(names, preset) {
				t.Errorf("%s help: %q is not a %s preset (have %v)", cmd.Name(), preset, game, names)
			}
		}
	}
	if seen == 0 {
		t.Fatal("no --difficulty examples found in help text")
	}
}
