package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a new logger with the specified log level. Output defaults to
// stderr because stdout carries command output.
func New(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()

	// Set log level
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.WarnLevel
	}
	logger.SetLevel(logLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	return logger
}

// Discard returns a logger that drops every entry, for tests.
func Discard() *logrus.Logger {
	return New("panic", io.Discard)
}

// WithFields creates a logger entry with the specified fields
func WithFields(logger logrus.FieldLogger, fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}
