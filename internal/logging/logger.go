// Package logging is the structured-logging layer of the categorizer. Components
// depend on the Logger interface; the logrus-backed adapter is built
// by the container (internal/container.NewContainer).
package logging

// Logger is the structured logger handed to every component.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err.
	WithError(err error) Logger
	// WithField returns a child logger carrying one extra field.
	WithField(key string, value interface{}) Logger
	// WithFields returns a child logger carrying the given fields.
	WithFields(fields ...Field) Logger
}

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

var defaultLogger = NewLogrusAdapter("info", "text")

// GetLogger returns the process-wide fallback logger, used by components that
// were constructed without one.
func GetLogger() Logger {
	return defaultLogger
}

// SetLogger replaces the process-wide fallback logger. Nil is ignored.
func SetLogger(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}
