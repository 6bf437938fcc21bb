// Package logging configures the process-wide slog logger. The interactive
// UI owns the terminal, so logs always go to a rotating file under the
// config directory, never to stdout or stderr.
package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	// LogDir is the directory for the log file; empty discards all logs.
	LogDir string
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string
}

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init sets up the global logger. Safe to call once at startup before any
// goroutine logs.
func Init(cfg Config) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var w io.Writer = io.Discard
	if cfg.LogDir != "" {
		w = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "debug.log"),
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
	}

	mu.Lock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	mu.Unlock()
}

// ForComponent returns a logger tagged with the component name.
func ForComponent(name string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With("comp", name)
}
