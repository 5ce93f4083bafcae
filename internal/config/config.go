// Package config provides YAML-based difficulty presets for the arcade's
// real-time games, with embedded defaults and validation.
package config

// Players holds optional display names for the two sides of a local match.
type Players struct {
	Left  string `yaml:"left" validate:"max=16"`
	Right string `yaml:"right" validate:"max=16"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	DefaultPreset   string                `yaml:"default_preset" validate:"required"`
	ServeDelayTicks int                   `yaml:"serve_delay_ticks" validate:"gte=0"`
	PaddleHeight    int                   `yaml:"paddle_height" validate:"gte=2"`
	Players         Players               `yaml:"players"`
	Presets         map[string]PongPreset `yaml:"presets" validate:"required,min=1,dive"`
}

// PongPreset is one Pong difficulty level. Speeds are in screen cells.
type PongPreset struct {
	BallSpeed   float64 `yaml:"ball_speed" validate:"gt=0"`   // cells per tick
	PaddleSpeed float64 `yaml:"paddle_speed" validate:"gt=0"` // cells per key press
	WinScore    int     `yaml:"win_score" validate:"gt=0"`
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	DefaultPreset string                 `yaml:"default_preset" validate:"required"`
	FoodScore     int                    `yaml:"food_score" validate:"gt=0"`
	Presets       map[string]SnakePreset `yaml:"presets" validate:"required,min=1,dive"`
}

// SnakePreset is one Snake speed curve. The move delay starts at
// InitialDelayMS and shrinks by StepMS per food down to MinDelayMS.
type SnakePreset struct {
	InitialDelayMS int `yaml:"initial_delay_ms" validate:"gt=0"`
	StepMS         int `yaml:"step_ms" validate:"gte=0"`
	MinDelayMS     int `yaml:"min_delay_ms" validate:"gt=0,ltefield=InitialDelayMS"`
}

// DelayAfter returns the move delay in milliseconds after eaten food.
func (p SnakePreset) DelayAfter(eaten int) int {
	return max(p.MinDelayMS, p.InitialDelayMS-eaten*p.StepMS)
}

// DefaultPongConfig returns the hardcoded Pong configuration, used when no
// YAML source can be read.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		DefaultPreset:   "normal",
		ServeDelayTicks: 60,
		PaddleHeight:    4,
		Players:         Players{Left: "LEFT", Right: "RIGHT"},
		Presets: map[string]PongPreset{
			"easy":   {BallSpeed: 0.4, PaddleSpeed: 2.0, WinScore: 10},
			"normal": {BallSpeed: 0.6, PaddleSpeed: 1.6, WinScore: 15},
			"hard":   {BallSpeed: 0.9, PaddleSpeed: 1.2, WinScore: 20},
			"insane": {BallSpeed: 1.3, PaddleSpeed: 0.8, WinScore: 25},
		},
	}
}

// DefaultSnakeConfig returns the hardcoded Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		DefaultPreset: "normal",
		FoodScore:     10,
		Presets: map[string]SnakePreset{
			"easy":   {InitialDelayMS: 220, StepMS: 2, MinDelayMS: 120},
			"normal": {InitialDelayMS: 160, StepMS: 3, MinDelayMS: 90},
			"fast":   {InitialDelayMS: 110, StepMS: 5, MinDelayMS: 60},
		},
	}
}
