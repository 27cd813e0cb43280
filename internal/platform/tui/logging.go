package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig selects where and how verbosely the platform logs.
type LogConfig struct {
	// File is a log file path; empty logs to stderr.
	// Files are rotated at 10 MB, keeping 3 backups for 7 days.
	File  string
	Level string // debug, info, warn, error; empty means info
	// Prefix is shown before every message.
	Prefix string
}

// NewLogger builds a charmbracelet logger for the given config.
// The returned closer flushes and closes the log file, if any.
func NewLogger(cfg LogConfig) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		lvl, err := log.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("log: invalid level %q: %w", cfg.Level, err)
		}
		level = lvl
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		path, err := expandHome(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log: cannot create directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		w = rotator
		closer = rotator
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          cfg.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// NopLogger returns a logger that discards everything.
func NopLogger() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("log: cannot get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
