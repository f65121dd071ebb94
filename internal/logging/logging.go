package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// logger is the shared application logger. Output goes to stderr so that
// command output on stdout stays clean for piping.
var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if DebugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

// DebugEnabled returns true if debug mode is enabled via the CVT_DEBUG
// environment variable
func DebugEnabled() bool {
	return os.Getenv("CVT_DEBUG") != ""
}

// SetVerbose raises the log level to Info when verbose output is requested.
func SetVerbose(verbose bool) {
	if DebugEnabled() {
		return // debug wins
	}
	if verbose {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// SetOutput redirects log output; used by tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// WithField returns an entry with a single structured field attached.
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}

// WithFields returns an entry with structured fields attached.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return logger.WithFields(fields)
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Infof prints a formatted informational message
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warnf prints a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Errorf prints a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
