package tmux

import (
	"fmt"
	"strconv"
	"strings"
)

// Target identifies the tmux server and session a client is attached to,
// as advertised by the $TMUX variable in the client's environment. The
// variable carries "socket_path,server_pid,session_id".
type Target struct {
	// SocketPath is the absolute path of the server socket.
	SocketPath string
	// ServerPID is the pid of the tmux server process.
	ServerPID int
	// SessionID is the numeric session id, without the "$" prefix.
	SessionID string
}

// ParseTarget parses a $TMUX value into a Target.
func ParseTarget(value string) (Target, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Target{}, ErrInvalidTarget
	}

	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return Target{}, fmt.Errorf("%w: expected 3 parts, got %d", ErrInvalidTarget, len(parts))
	}
	if parts[0] == "" || parts[2] == "" {
		return Target{}, fmt.Errorf("%w: empty socket path or session id", ErrInvalidTarget)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return Target{}, fmt.Errorf("%w: bad server pid %q", ErrInvalidTarget, parts[1])
	}

	return Target{
		SocketPath: parts[0],
		ServerPID:  pid,
		SessionID:  strings.TrimPrefix(parts[2], "$"),
	}, nil
}

// Session returns the session in tmux target syntax, e.g. "$3".
func (t Target) Session() string {
	return "$" + t.SessionID
}
