/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced when
// modresolve is embedded in editor integrations.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu sync.RWMutex
	// Default logs to stderr. Set to io.Discard for silent mode.
	logger = newLogger(os.Stderr, log.InfoLevel)
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "modresolve",
		Level:  level,
	})
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, logger.GetLevel())
}

// SetVerbose enables debug output, which includes resolution traces.
func SetVerbose(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	current().SetLevel(level)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Debug logs a debug message. It is only written in verbose mode.
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Resolver adapts the package logger to the resolver's Logger interface.
type Resolver struct{}

// Warning logs a warning message.
func (Resolver) Warning(format string, args ...any) {
	Warn(format, args...)
}

// Debug logs a debug message.
func (Resolver) Debug(format string, args ...any) {
	Debug(format, args...)
}
