// Package tmux implements the multiplexer layer: a thin exec wrapper around
// the tmux binary plus the pane navigation probe built on top of it.
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

// Runner executes tmux commands against a single server socket.
type Runner interface {
	// Run executes tmux with the given arguments and returns stdout and
	// stderr. The context bounds the whole execution.
	Run(ctx context.Context, args ...string) (string, string, error)
}

// DefaultClient implements Runner using exec.Command to run tmux with -S
// pointed at the server socket advertised in $TMUX.
type DefaultClient struct {
	tmuxPath   string
	socketPath string
	timeout    time.Duration
}

// NewDefaultClient creates a client for the server behind socketPath.
func NewDefaultClient(socketPath string, opts ...ClientOption) *DefaultClient {
	client := &DefaultClient{
		tmuxPath:   "tmux",
		socketPath: socketPath,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// runCommand executes a tmux command with the given arguments.
// It returns stdout, stderr, and any error that occurred.
func (c *DefaultClient) runCommand(ctx context.Context, args ...string) (string, string, error) {
	start := time.Now()
	command := ""
	if len(args) > 0 {
		command = args[0]
	}
	colors.StructuredDebug("tmux", "run", "started", nil, command, map[string]interface{}{"args_count": len(args)})
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmdArgs := append([]string{"-S", c.socketPath}, args...)

	cmd := exec.CommandContext(ctx, c.tmuxPath, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start).Seconds()
	if err != nil && ctx.Err() != nil {
		// A context kill surfaces as "signal: killed"; keep the deadline
		// visible so callers can classify it.
		err = fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	if err != nil {
		colors.StructuredDebug("tmux", "run", "failed", err, command, map[string]interface{}{"args_count": len(args), "duration_seconds": duration})
	} else {
		colors.StructuredDebug("tmux", "run", "completed", nil, command, map[string]interface{}{"args_count": len(args), "duration_seconds": duration})
	}
	return strings.TrimRight(stdout.String(), "\n"), strings.TrimRight(stderr.String(), "\n"), err
}

// Run executes a tmux command with the given arguments.
// It returns stdout, stderr, and any error that occurred. Failures are
// classified onto the shared error kinds so callers can tell a dead server
// from a rejected command.
func (c *DefaultClient) Run(ctx context.Context, args ...string) (string, string, error) {
	stdout, stderr, err := c.runCommand(ctx, args...)
	if err != nil {
		return stdout, stderr, classifyRunError(err, stderr)
	}
	return stdout, stderr, nil
}

// classifyRunError maps a failed execution onto the shared error kinds.
func classifyRunError(err error, stderr string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("tmux: %w: %v", nav.ErrTimeout, err)
	case strings.Contains(stderr, "no server running"),
		strings.Contains(stderr, "error connecting to"):
		return fmt.Errorf("tmux: %w: %s", nav.ErrConnection, stderr)
	case errors.Is(err, exec.ErrNotFound):
		return fmt.Errorf("tmux: %w: %v", nav.ErrConnection, err)
	default:
		if stderr != "" {
			return fmt.Errorf("%w: %s", ErrCommandFailed, stderr)
		}
		return fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}
}
