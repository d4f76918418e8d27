package tmux

import "errors"

// Custom error types for tmux-specific failures.
var (
	// ErrServerNotRunning is returned when the tmux server behind the
	// advertised socket is gone.
	ErrServerNotRunning = errors.New("tmux server is not running")

	// ErrInvalidTarget is returned when a $TMUX value cannot be parsed
	// into a socket path and session.
	ErrInvalidTarget = errors.New("invalid tmux target specification")

	// ErrCommandFailed is returned when a tmux command execution fails.
	ErrCommandFailed = errors.New("tmux command failed")
)
