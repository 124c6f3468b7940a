package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats accepted by Config.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config controls the stdout handler.
type Config struct {
	Format string `env:"LOG_FORMAT" yaml:"format"`
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
}

// ParseLevel converts a level name ("debug", "info", "warn", "error", or an
// offset such as "warn+2") to slog.Level. Blank or unknown names mean info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// New creates a JSON-formatted logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{Format: FormatJSON, Level: "info"}, os.Stdout, extractors...)
}

// NewWithConfig creates a logger writing to w in the configured format and level.
// Unknown formats fall back to JSON.
func NewWithConfig(cfg Config, w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(withExtractors(newHandler(cfg, w), extractors))
}

func newHandler(cfg Config, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, FormatText) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// NewNope returns a logger that discards everything. It is the default
// wherever no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
