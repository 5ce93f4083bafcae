package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// LoadPong loads Pong configuration.
// Search order: customPath -> ~/.arcade/configs/pong.yaml -> ./configs/pong.yaml -> embedded default
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong.yaml", customPath, defaultPongYAML, DefaultPongConfig)
}

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig)
}

// load walks the search path. A custom path must be readable and valid;
// broken files elsewhere are logged and skipped.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	if customPath != "" {
		cfg, err := parseFile[T](customPath)
		if err != nil {
			var zero T
			return zero, err
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if p := userConfigPath(filename); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := parseFile[T](path)
		if err != nil {
			log.Warn("skipping config", "path", path, "err", err)
			continue
		}
		return cfg, nil
	}

	cfg, err := parse[T](embedded)
	if err != nil {
		log.Warn("embedded config unusable, using built-in defaults", "file", filename, "err", err)
		return fallback(), nil
	}
	return cfg, nil
}

func parseFile[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parse[T](data)
	if err != nil {
		return zero, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func parse[T any](data []byte) (T, error) {
	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
