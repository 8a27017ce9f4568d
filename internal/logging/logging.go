// Package logging is a thin leveled wrapper around the standard log package.
// Everything goes to stderr so that stdout stays reserved for menu output.
package logging

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	logger  = log.New(os.Stderr, "waymenu: ", log.LstdFlags)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	return verbose.Load()
}

// SetOutput redirects log output. Tests use it to capture messages.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debugf logs only when verbose output is enabled.
func Debugf(format string, args ...any) {
	if verbose.Load() {
		logger.Printf("[DEBUG] "+format, args...)
	}
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	logger.Printf("[INFO] "+format, args...)
}

// Errorf logs a recovered failure.
func Errorf(format string, args ...any) {
	logger.Printf("[ERROR] "+format, args...)
}
