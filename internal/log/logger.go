package log

// Logger defines a common interface shared by logging engines.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, v ...interface{})

	// Info logs an informational message.
	Info(format string, v ...interface{})

	// Warn logs a warning message.
	Warn(format string, v ...interface{})

	// Error logs an error message.
	Error(format string, v ...interface{})

	// Level returns the currently configured logging level.
	Level() Level
}

// NopLogger is a logging engine that discards every message. It backs quiet operation and
// keeps test output clean.
type NopLogger struct{}

// NewNopLogger creates a logger that discards everything.
func NewNopLogger() Logger {
	return &NopLogger{}
}

// Debug noops.
func (l *NopLogger) Debug(format string, v ...interface{}) {}

// Info noops.
func (l *NopLogger) Info(format string, v ...interface{}) {}

// Warn noops.
func (l *NopLogger) Warn(format string, v ...interface{}) {}

// Error noops.
func (l *NopLogger) Error(format string, v ...interface{}) {}

// Level reports the most restrictive level, since nothing is ever emitted.
func (l *NopLogger) Level() Level {
	return Error
}
