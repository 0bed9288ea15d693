// Package logger provides the structured logger shared by the loader and the CLI.
// It writes pterm's leveled, key/value output to stderr so that stdout only
// carries query results.
package logger

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Logger is the default logger instance.
var Logger = New(os.Stderr, false)

// New returns a logger writing to w, at debug level when debug is set.
func New(w io.Writer, debug bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	if debug {
		level = pterm.LogLevelDebug
	}
	return pterm.DefaultLogger.WithLevel(level).WithWriter(w)
}

// SetDebug switches the default logger between info and debug level.
func SetDebug(debug bool) {
	Logger = New(os.Stderr, debug)
}

// Debug logs a debug message with key/value pairs.
func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, Logger.Args(keyvals...))
}

// Warn logs a warning with key/value pairs.
func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, Logger.Args(keyvals...))
}

// Error logs an error with key/value pairs.
func Error(msg string, keyvals ...any) {
	Logger.Error(msg, Logger.Args(keyvals...))
}
