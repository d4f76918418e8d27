package tmux

import "time"

const (
	// DefaultTimeout is the default timeout for tmux commands.
	DefaultTimeout = 250 * time.Millisecond
)

// ClientOption is a functional option for configuring a DefaultClient.
type ClientOption func(*DefaultClient)

// WithTmuxPath overrides the tmux binary used to reach the server.
func WithTmuxPath(path string) ClientOption {
	return func(c *DefaultClient) {
		c.tmuxPath = path
	}
}

// WithTimeout sets the timeout for tmux command execution.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DefaultClient) {
		c.timeout = timeout
	}
}
