package config

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownPreset is returned when a difficulty name is not configured.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// presetOrder lists the built-in names from slowest to fastest. Names from
// user files that are not listed sort alphabetically after them.
var presetOrder = []string{"easy", "normal", "fast", "hard", "insane"}

// Preset returns the named Pong preset. An empty name selects the default.
func (c PongConfig) Preset(name string) (PongPreset, error) {
	if name == "" {
		name = c.DefaultPreset
	}
	p, ok := c.Presets[name]
	if !ok {
		return PongPreset{}, fmt.Errorf("%w: pong %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames returns the configured Pong difficulty names in display order.
func (c PongConfig) PresetNames() []string {
	return orderedNames(c.Presets)
}

// Preset returns the named Snake preset. An empty name selects the default.
func (c SnakeConfig) Preset(name string) (SnakePreset, error) {
	if name == "" {
		name = c.DefaultPreset
	}
	p, ok := c.Presets[name]
	if !ok {
		return SnakePreset{}, fmt.Errorf("%w: snake %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// PresetNames returns the configured Snake difficulty names in display order.
func (c SnakeConfig) PresetNames() []string {
	return orderedNames(c.Presets)
}

// PresetNamesFor returns the difficulty names of a game, or nil for games
// without presets. Load errors fall back to the built-in defaults.
func PresetNamesFor(gameID, customPath string) []string {
	switch gameID {
	case "pong":
		cfg, err := LoadPong(customPath)
		if err != nil {
			cfg = DefaultPongConfig()
		}
		return cfg.PresetNames()
	case "snake":
		cfg, err := LoadSnake(customPath)
		if err != nil {
			cfg = DefaultSnakeConfig()
		}
		return cfg.PresetNames()
	default:
		return nil
	}
}

func orderedNames[T any](presets map[string]T) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	rank := func(name string) int {
		if i := slices.Index(presetOrder, name); i >= 0 {
			return i
		}
		return len(presetOrder)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}
