// Package logging provides the explicit, threaded logger used across the
// pipeline and the orchestrator's subprocess lifecycle. Unlike the
// package-level Verbose/Logger globals this codebase's ancestor used, a
// *Logger is constructed once by the CLI entrypoint and passed down, so a
// library caller embedding the pipeline never fights over global state.
package logging

import (
	"io"
	"log"
	"os"
)

// Logger wraps a standard library *log.Logger with a verbosity gate.
type Logger struct {
	verbose bool
	std     *log.Logger
}

// New returns a Logger writing to w, timestamped to microsecond
// resolution the way the reference tooling's logger does.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{
		verbose: verbose,
		std:     log.New(w, "", log.Ltime|log.Lmicroseconds),
	}
}

// Default returns a Logger writing to stderr.
func Default(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// SetVerbose toggles debug/info output at runtime, e.g. after parsing a
// --verbose flag.
func (l *Logger) SetVerbose(enabled bool) {
	l.verbose = enabled
}

// Verbose reports the current verbosity.
func (l *Logger) Verbose() bool {
	return l.verbose
}

// Debugf prints only when verbose.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.verbose {
		l.std.Printf("[DEBUG] "+format, args...)
	}
}

// Infof prints only when verbose.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.verbose {
		l.std.Printf("[INFO] "+format, args...)
	}
}

// Warnf always prints — a quarantine warning or a degraded adapter run is
// worth surfacing regardless of verbosity.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.std.Printf("[WARN] "+format, args...)
}

// Errorf always prints.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.std.Printf("[ERROR] "+format, args...)
}
