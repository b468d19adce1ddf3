package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// DefaultLogger writes logrus text records.
type DefaultLogger struct {
	entry *logrus.Logger
}

// NewDefaultLogger logs at info level to stdout.
func NewDefaultLogger() *DefaultLogger {
	l, _ := New(os.Stdout, "info")
	return l
}

// New builds a logger writing to out at the named level
// (debug, info, warn, error).
func New(out io.Writer, level string) (*DefaultLogger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return &DefaultLogger{entry: newLogrus(out, logrus.InfoLevel)}, err
	}
	return &DefaultLogger{entry: newLogrus(out, lvl)}, nil
}

func newLogrus(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

func (l *DefaultLogger) Debug(msg string, fields ...Field) {
	l.with(fields).Debug(msg)
}

func (l *DefaultLogger) Info(msg string, fields ...Field) {
	l.with(fields).Info(msg)
}

func (l *DefaultLogger) Warn(msg string, fields ...Field) {
	l.with(fields).Warn(msg)
}

func (l *DefaultLogger) Error(msg string, fields ...Field) {
	l.with(fields).Error(msg)
}

func (l *DefaultLogger) with(fields []Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = sanitizeValue(f.Value)
	}
	return l.entry.WithFields(lf)
}

// Header values and request bodies can be arbitrarily long.
func sanitizeValue(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		if len(s) > 100 {
			return s[:100] + "...[truncated]"
		}
	}
	return v
}

// NullLogger discards all logs (for testing)
type NullLogger struct{}

func (NullLogger) Debug(msg string, fields ...Field) {}
func (NullLogger) Info(msg string, fields ...Field)  {}
func (NullLogger) Warn(msg string, fields ...Field)  {}
func (NullLogger) Error(msg string, fields ...Field) {}
