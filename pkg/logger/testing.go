package logger

import (
	"testing"
)

// TestLogger routes log output through testing.T so it shows up attached to
// the failing test.
type TestLogger struct {
	T *testing.T
}

// NewTestLogger creates a logger for use in tests. A nil T discards all
// output.
func NewTestLogger(t *testing.T) Logger {
	return &TestLogger{T: t}
}

func (l *TestLogger) Debug(msg string) { l.logf("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.logf("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.logf("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.logf("ERROR", msg) }
func (l *TestLogger) Fatal(msg string) { l.logf("FATAL", msg) }

func (l *TestLogger) logf(level, msg string) {
	if l.T != nil {
		l.T.Logf("[%s] %s", level, msg)
	}
}

// WithField returns the logger unchanged; test output does not need
// structured fields.
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l
}

// WithFields returns the logger unchanged.
func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return l
}
