// Package logging builds the process logger on log/slog.
//
// There is no global logger. The CLI builds one from Config and hands it to
// the engine, which derives per-component and per-query loggers with the
// With* helpers:
//
//	log, closer, err := logging.New(logging.Config{Level: "debug", Format: "json"}, os.Stderr)
//	defer closer.Close()
//	eng := engine.New(provider, engine.WithLogger(log))
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds logger configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // "json" or "text"
	OutputPath string // empty for the writer passed to New
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from cfg. When cfg.OutputPath is set the log goes to
// that file, opened for append, and the returned Closer closes it. Otherwise
// it goes to w.
func New(cfg Config, w io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var closer io.Closer = nopCloser{}
	if cfg.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o750); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open log file: %w", err)
		}
		w = f
		closer = f
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	return slog.New(handler), closer, nil
}

// ParseLevel maps a level name to a slog.Level. An empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", name)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithComponent tags log lines with the subsystem that wrote them.
func WithComponent(log *slog.Logger, component string) *slog.Logger {
	return log.With("component", component)
}

// WithTable creates a logger with table context.
func WithTable(log *slog.Logger, table string) *slog.Logger {
	return log.With("table", table)
}

// WithQuery creates a logger carrying the query correlation id.
func WithQuery(log *slog.Logger, queryID string) *slog.Logger {
	return log.With("query_id", queryID)
}
