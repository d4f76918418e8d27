// Package compositor implements a minimal client for the niri IPC socket.
// Each request is a single JSON line; each reply is a single JSON line of the
// form {"Ok": ...} or {"Err": "..."}. Connections are scoped to one
// round-trip and never pooled, so a compositor restart between invocations
// can never leave the client holding a stale handle.
package compositor

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

const (
	// DefaultTimeout bounds one request round-trip.
	DefaultTimeout = 250 * time.Millisecond

	// SocketEnv is the environment variable niri publishes its IPC socket
	// path under.
	SocketEnv = "NIRI_SOCKET"
)

// Client talks to the niri IPC socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithSocketPath overrides the socket path taken from $NIRI_SOCKET.
func WithSocketPath(socketPath string) ClientOption {
	return func(c *Client) {
		c.socketPath = socketPath
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a Client. The socket path defaults to $NIRI_SOCKET.
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		socketPath: os.Getenv(SocketEnv),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Connect verifies the compositor socket is reachable. It dials and closes a
// throwaway connection; the actual requests dial their own.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// SocketPath returns the resolved socket path.
func (c *Client) SocketPath() string {
	return c.socketPath
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	if c.socketPath == "" {
		return nil, fmt.Errorf("compositor socket: %w: %s is not set", nav.ErrConnection, SocketEnv)
	}
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("compositor socket %s: %w: %v", c.socketPath, nav.ErrConnection, err)
	}
	return conn, nil
}

// roundtrip sends one request line and decodes one reply line. A context
// without a deadline gets the client timeout.
func (c *Client) roundtrip(ctx context.Context, request any) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("compositor request: %w: %v", nav.ErrConnection, err)
		}
	}

	if err := json.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("compositor request: %w: %v", nav.Classify(err), err)
	}

	var reply reply
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return nil, fmt.Errorf("compositor reply: %w: %v", nav.Classify(err), err)
	}
	colors.StructuredDebug("compositor", "roundtrip", "completed", nil, c.socketPath,
		map[string]interface{}{"duration_seconds": time.Since(start).Seconds()})

	if reply.Err != nil {
		return nil, fmt.Errorf("compositor reply: %w: %s", nav.ErrProtocol, *reply.Err)
	}
	if reply.Ok == nil {
		return nil, fmt.Errorf("compositor reply: %w: neither Ok nor Err present", nav.ErrProtocol)
	}
	return reply.Ok, nil
}
