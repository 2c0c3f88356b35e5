package autolog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	phuslog "github.com/phuslu/log"
)

// Level is the severity a record is emitted at.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps a configuration string to a Level. Unknown or empty values
// fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Sink is the emission boundary of the package: one rendered line or one
// structured record per call. Implementations may fail; PerfLogger recovers
// those failures and reports them on its diagnostic writer instead of
// propagating them into unwinding application code.
type Sink interface {
	Emit(level Level, topic, message string, fields map[string]any) error
}

// SlogSink adapts a log/slog logger. The topic travels as a "topic"
// attribute; structured fields are appended in key order so output stays
// deterministic.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Emit(level Level, topic, message string, fields map[string]any) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := make([]any, 0, 2*(len(fields)+1))
	attrs = append(attrs, "topic", topic)
	for _, k := range sortedKeys(fields) {
		attrs = append(attrs, k, fields[k])
	}
	logger.Log(context.Background(), slogLevel(level), message, attrs...)
	return nil
}

func slogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PhusluSink adapts a phuslu/log logger.
type PhusluSink struct {
	Logger *phuslog.Logger
}

func (s PhusluSink) Emit(level Level, topic, message string, fields map[string]any) error {
	logger := s.Logger
	if logger == nil {
		logger = &phuslog.DefaultLogger
	}
	var e *phuslog.Entry
	switch level {
	case LevelDebug:
		e = logger.Debug()
	case LevelWarn:
		e = logger.Warn()
	case LevelError:
		e = logger.Error()
	default:
		e = logger.Info()
	}
	e = e.Str("topic", topic)
	for _, k := range sortedKeys(fields) {
		e = e.Any(k, fields[k])
	}
	e.Msg(message)
	return nil
}

// WriterSink writes plain "LEVEL [topic] message" lines to any io.Writer.
// It is the fallback sink when no logging backend is wired up.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Emit(level Level, topic, message string, fields map[string]any) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", strings.ToUpper(level.String()), topic, message)
	for _, k := range sortedKeys(fields) {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteString("\n")
	_, err := io.WriteString(s.W, b.String())
	return err
}

func sortedKeys(fields map[string]any) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
