// Package logging builds the process logger. The terminal belongs to the
// game screen, so log lines go to a file instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultPath is where logs land when no --log-file is given.
const DefaultPath = "~/.arcade/arcade.log"

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], string(filepath.Separator))), nil
}

// New creates a timestamped logger writing to w at the given level name
// ("debug", "info", "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           lvl,
	}), nil
}

// Setup opens the log file, installs the logger as the package default and
// returns a closer for the file. When the file cannot be opened logging is
// discarded and the error is returned alongside a working logger.
func Setup(path, level string) (*log.Logger, io.Closer, error) {
	var (
		w       io.Writer = io.Discard
		closer  io.Closer = nopCloser{}
		openErr error
	)

	if path != "" {
		f, err := openFile(path)
		if err != nil {
			openErr = err
		} else {
			w, closer = f, f
		}
	}

	logger, err := New(w, level)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	log.SetDefault(logger)
	return logger, closer, openErr
}

func openFile(path string) (*os.File, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open %s: %w", expanded, err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
