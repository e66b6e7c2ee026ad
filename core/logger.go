package core

import (
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// Logger interface for structured logging
// Implementations can provide custom logging behavior (e.g., integration with zap, slog, etc.)
type Logger interface {
	// Debug logs a debug message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error message with optional fields
	Error(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

// F creates a new Field with the given key and value
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// GripLogger logs through a grip Journaler. This is the default logger.
type GripLogger struct {
	journal grip.Journaler
}

// NewGripLogger creates a logger backed by a named grip journaler.
func NewGripLogger(name string) *GripLogger {
	return &GripLogger{journal: grip.NewJournaler(name)}
}

// Debug logs a debug message
func (l *GripLogger) Debug(msg string, fields ...Field) {
	l.journal.Debug(composeFields(msg, fields))
}

// Info logs an info message
func (l *GripLogger) Info(msg string, fields ...Field) {
	l.journal.Info(composeFields(msg, fields))
}

// Warn logs a warning message
func (l *GripLogger) Warn(msg string, fields ...Field) {
	l.journal.Warning(composeFields(msg, fields))
}

// Error logs an error message
func (l *GripLogger) Error(msg string, fields ...Field) {
	l.journal.Error(composeFields(msg, fields))
}

func composeFields(msg string, fields []Field) message.Fields {
	out := message.Fields{"message": msg}
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// NoOpLogger is a logger that discards all log messages
// Useful for tests or when logging is not desired
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Debug(msg string, fields ...Field) {}
func (l *NoOpLogger) Info(msg string, fields ...Field)  {}
func (l *NoOpLogger) Warn(msg string, fields ...Field)  {}
func (l *NoOpLogger) Error(msg string, fields ...Field) {}
