// Package colors provides user-facing console output and its structured
// logging mirror.
package colors

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled = false
	colorEnabled = true
	logger       Logger
	loggerMu     sync.RWMutex
)

func init() {
	if val := os.Getenv("NIRINAV_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || os.Getenv("TERM") == "dumb" {
		colorEnabled = false
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	return debugEnabled
}

// SetColor enables or disables ANSI colors.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func mirror() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// paint wraps s in the color when colors are enabled.
func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + Reset
}

// errorFallback logs a message without colors to avoid recursion.
func errorFallback(msg string) {
	fmt.Fprintf(os.Stderr, "%s\n", msg)
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Error(msg)
	}
	if _, err := fmt.Fprintf(os.Stderr, "%s %s\n", paint(Red, "Error:"), msg); err != nil {
		errorFallback("Error: " + msg)
	}
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Info(msg, "type", "success")
	}
	if _, err := fmt.Fprintf(os.Stdout, "%s %s\n", paint(Green, checkmark), msg); err != nil {
		errorFallback(msg)
	}
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Warn(msg)
	}
	if _, err := fmt.Fprintf(os.Stderr, "%s %s\n", paint(Yellow, "Warning:"), msg); err != nil {
		errorFallback("Warning: " + msg)
	}
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Info(msg)
	}
	if _, err := fmt.Fprintf(os.Stdout, "%s\n", paint(Blue, msg)); err != nil {
		errorFallback(msg)
	}
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := mirror(); l != nil {
		l.Debug(msg)
	}
	if !debugEnabled {
		return
	}
	if _, err := fmt.Fprintf(os.Stderr, "%s %s\n", paint(Cyan, "Debug:"), msg); err != nil {
		errorFallback("Debug: " + msg)
	}
}
