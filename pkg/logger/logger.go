// Package logger configures the process-wide structured logger.
//
// Both CLI entry points write their JSON result document to stdout, so
// logging defaults to stderr here rather than the stdout default the
// teacher's service processes use.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *slog.Logger

func init() {
	Log = New(Config{Level: "info", Format: "json", Output: "stderr"})
}

// Config selects the logger's verbosity, encoding, and sink.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stderr, stdout, file
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New builds a slog.Logger from cfg. It never reads flags or environment
// variables — callers supply cfg explicitly (spec §6).
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "stdout":
		writer = os.Stdout
	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "logs/factoryplan.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			writer = os.Stderr
		} else {
			writer = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   cfg.Compress,
			}
		}
	default:
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler)
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(name string) *slog.Logger {
	return Log.With("component", name)
}
