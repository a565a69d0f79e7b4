// Package logging builds the structured loggers used by the server and CLI.
package logging

import (
	"errors"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/validation"
)

// ErrInvalidLevel is returned by ParseLevel for an unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// Level is a configured log verbosity.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// ValidLevels returns all accepted level names.
func ValidLevels() []Level {
	return []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel}
}

// ParseLevel accepts a level name case-insensitively. An empty value is
// InfoLevel.
func ParseLevel(value string) (Level, error) {
	normalized := Level(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return InfoLevel, nil
	}
	if normalized == "warning" {
		return WarnLevel, nil
	}
	for _, level := range ValidLevels() {
		if normalized == level {
			return level, nil
		}
	}
	return "", validation.InvalidValueError(ErrInvalidLevel, value, ValidLevels())
}

func (l Level) String() string {
	return string(l)
}

func (l Level) charmLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Config configures New.
type Config struct {
	Level  Level
	Output io.Writer
	JSON   bool
	Prefix string

	// Timestamps adds a time field to each entry.
	Timestamps bool
}

// New returns a logger writing to cfg.Output, or stderr when unset.
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	formatter := charmlog.TextFormatter
	if cfg.JSON {
		formatter = charmlog.JSONFormatter
	}
	return charmlog.NewWithOptions(out, charmlog.Options{
		Level:           cfg.Level.charmLevel(),
		Prefix:          cfg.Prefix,
		ReportTimestamp: cfg.Timestamps,
		TimeFormat:      "15:04:05",
		Formatter:       formatter,
	})
}

// Discard returns a logger that drops everything.
func Discard() *charmlog.Logger {
	return New(Config{Output: io.Discard, Level: ErrorLevel})
}
