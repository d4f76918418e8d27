package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	structuredMu             sync.Mutex
	structuredLoggingEnabled atomic.Bool
)

func init() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLogLevel represents log level for structured logs.
type StructuredLogLevel string

const (
	LevelDebug StructuredLogLevel = "debug"
	LevelInfo  StructuredLogLevel = "info"
	LevelWarn  StructuredLogLevel = "warn"
	LevelError StructuredLogLevel = "error"
)

// StructuredLogEntry is one structured log record. Component names the layer
// or package, Action the operation, Target the socket/window/pid it acted on.
type StructuredLogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     StructuredLogLevel     `json:"level"`
	Component string                 `json:"component"`
	Action    string                 `json:"action"`
	Status    string                 `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Target    string                 `json:"target,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// DisableStructuredLogging disables structured logging output.
// Used by the inspector, where JSON on stderr corrupts the display.
func DisableStructuredLogging() {
	structuredLoggingEnabled.Store(false)
}

// EnableStructuredLogging enables structured logging output.
func EnableStructuredLogging() {
	structuredLoggingEnabled.Store(true)
}

// StructuredLog writes a structured entry. The file logger (when configured)
// always receives it; the stderr JSON line is emitted only in debug mode.
func StructuredLog(level StructuredLogLevel, component, action, status string, err error, target string, fields map[string]interface{}) {
	if l := mirror(); l != nil {
		args := []any{"component", component, "action", action, "status", status}
		if target != "" {
			args = append(args, "target", target)
		}
		if err != nil {
			args = append(args, "error", err.Error())
		}
		for k, v := range fields {
			args = append(args, k, v)
		}
		msg := component + "." + action
		switch level {
		case LevelError:
			l.Error(msg, args...)
		case LevelWarn:
			l.Warn(msg, args...)
		case LevelInfo:
			l.Info(msg, args...)
		default:
			l.Debug(msg, args...)
		}
	}

	if !debugEnabled || !structuredLoggingEnabled.Load() {
		return
	}

	entry := StructuredLogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: component,
		Action:    action,
		Status:    status,
		Target:    target,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		errorFallback(fmt.Sprintf("failed to marshal structured log: %v", marshalErr))
		return
	}

	structuredMu.Lock()
	defer structuredMu.Unlock()
	if _, writeErr := fmt.Fprintf(os.Stderr, "%s\n", data); writeErr != nil {
		errorFallback(fmt.Sprintf("failed to write structured log: %v", writeErr))
	}
}

// StructuredDebug logs a structured debug entry.
func StructuredDebug(component, action, status string, err error, target string, fields map[string]interface{}) {
	StructuredLog(LevelDebug, component, action, status, err, target, fields)
}

// StructuredInfo logs a structured info entry.
func StructuredInfo(component, action, status string, err error, target string, fields map[string]interface{}) {
	StructuredLog(LevelInfo, component, action, status, err, target, fields)
}

// StructuredWarn logs a structured warning entry.
func StructuredWarn(component, action, status string, err error, target string, fields map[string]interface{}) {
	StructuredLog(LevelWarn, component, action, status, err, target, fields)
}

// StructuredError logs a structured error entry.
func StructuredError(component, action, status string, err error, target string, fields map[string]interface{}) {
	StructuredLog(LevelError, component, action, status, err, target, fields)
}
