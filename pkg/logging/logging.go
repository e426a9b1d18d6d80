package logging

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across the pipeline
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})
}

// contextKey is the type for context keys used by the logger
type contextKey string

// RunIDKey is the context key carrying the pipeline run ID
const RunIDKey contextKey = "run_id"

var jsonEnabled = false

// SetZeroLogJsonEnabled forces JSON output regardless of environment variables
func SetZeroLogJsonEnabled() {
	jsonEnabled = true
}

// zeroLogger implements Logger on top of zerolog
type zeroLogger struct {
	logger zerolog.Logger
}

// New creates a new logger. Output is human-readable console format by
// default; set LOG_FORMAT=json or LOG_JSON=true for JSON output.
func New() Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	var logger zerolog.Logger
	if useJSON() {
		logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	} else {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	}

	return &zeroLogger{logger: logger}
}

func useJSON() bool {
	if jsonEnabled {
		return true
	}
	switch os.Getenv("LOG_JSON") {
	case "true", "1", "yes":
		return true
	}
	return os.Getenv("LOG_FORMAT") == "json"
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (z *zeroLogger) emit(ctx context.Context, event *zerolog.Event, msg string, fields map[string]interface{}) {
	if runID, ok := ctx.Value(RunIDKey).(string); ok && runID != "" {
		event = event.Str("run_id", runID)
	}
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	event.Msg(msg)
}

// Debug logs a message at debug level
func (z *zeroLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	z.emit(ctx, z.logger.Debug(), msg, fields)
}

// Info logs a message at info level
func (z *zeroLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	z.emit(ctx, z.logger.Info(), msg, fields)
}

// Warn logs a message at warn level
func (z *zeroLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	z.emit(ctx, z.logger.Warn(), msg, fields)
}

// Error logs a message at error level
func (z *zeroLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	z.emit(ctx, z.logger.Error(), msg, fields)
}

// NoOp returns a logger that discards everything, for tests
func NoOp() Logger {
	return &zeroLogger{logger: zerolog.Nop()}
}
