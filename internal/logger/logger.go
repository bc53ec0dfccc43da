// Package logger provides pgscan's leveled logging: debug output gated
// behind --verbose, and error output that is always shown.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger provides leveled logging functionality.
type Logger struct {
	verbose bool
	debug   *log.Logger
	error   *log.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(false, os.Stderr)
}

// New creates a new logger instance.
func New(verbose bool, output io.Writer) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		verbose: verbose,
		debug:   log.New(output, "[DEBUG] ", flags),
		error:   log.New(output, "[ERROR] ", flags),
	}
}

// SetVerbose enables or disables verbose logging.
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// Debug logs a debug message (only shown if verbose is enabled).
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose {
		l.debug.Printf(format, args...)
	}
}

// Error logs an error message (always shown).
func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Printf(format, args...)
}

// Debugf is an alias for Debug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(format, args...)
}

// Errorf is an alias for Error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(format, args...)
}

// Package-level functions that use the default logger.

// SetVerbose enables or disables verbose logging on the default logger.
func SetVerbose(verbose bool) {
	defaultLogger.SetVerbose(verbose)
}

// Debugf logs a debug message using the default logger (only shown if
// verbose is enabled).
func Debugf(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Errorf logs an error message using the default logger.
func Errorf(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}
