package kitty

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

const (
	// DefaultTimeout bounds one command round-trip.
	DefaultTimeout = 250 * time.Millisecond

	// framePrefix and frameSuffix delimit a remote control message. kitty
	// wraps command JSON in a DCS escape sequence on both directions.
	framePrefix = "\x1bP@kitty-cmd"
	frameSuffix = "\x1b\\"
)

// protocolVersion is the remote control version announced in every command.
var protocolVersion = []int{0, 26, 0}

// Client talks to one kitty instance's control socket. Connections are
// scoped to a single command; nothing is pooled.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-command timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a Client for the control socket at socketPath.
func NewClient(socketPath string, opts ...ClientOption) *Client {
	client := &Client{
		socketPath: socketPath,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// SocketPath returns the socket path the client targets.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// command is the envelope kitty expects for every remote control message.
type command struct {
	Cmd        string `json:"cmd"`
	Version    []int  `json:"version"`
	NoResponse bool   `json:"no_response"`
	Payload    any    `json:"payload,omitempty"`
}

// envelope is kitty's response shape. Data usually holds the payload
// JSON-encoded into a string; older versions inline it.
type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// commandError is a command the terminal understood and rejected, as opposed
// to a transport failure.
type commandError struct {
	cmd     string
	message string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("kitty %s: %s", e.cmd, e.message)
}

// isNoMatch reports whether an error is kitty telling us no window matched
// the given expression. That is a boundary, not a failure.
func isNoMatch(err error) bool {
	var cmdErr *commandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return strings.Contains(strings.ToLower(cmdErr.message), "no matching")
}

// roundtrip sends one framed command and reads one framed response.
func (c *Client) roundtrip(ctx context.Context, cmd string, payload any) (json.RawMessage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("terminal socket %s: %w: %v", c.socketPath, nav.ErrConnection, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("terminal command %s: %w: %v", cmd, nav.ErrConnection, err)
		}
	}

	body, err := json.Marshal(command{Cmd: cmd, Version: protocolVersion, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("terminal command %s: %w: %v", cmd, nav.ErrProtocol, err)
	}
	if _, err := conn.Write([]byte(framePrefix + string(body) + frameSuffix)); err != nil {
		return nil, fmt.Errorf("terminal command %s: %w: %v", cmd, nav.Classify(err), err)
	}

	frame, err := readFrame(bufio.NewReader(conn))
	if err != nil {
		return nil, fmt.Errorf("terminal response %s: %w: %v", cmd, nav.Classify(err), err)
	}

	var resp envelope
	if err := json.Unmarshal(frame, &resp); err != nil {
		return nil, fmt.Errorf("terminal response %s: %w: %v", cmd, nav.ErrProtocol, err)
	}
	colors.StructuredDebug("kitty", cmd, "completed", nil, c.socketPath,
		map[string]interface{}{"ok": resp.OK})
	if !resp.OK {
		return nil, &commandError{cmd: cmd, message: resp.Error}
	}
	return resp.Data, nil
}

// readFrame consumes one DCS-framed message and returns its JSON body.
func readFrame(r *bufio.Reader) ([]byte, error) {
	var buf bytes.Buffer
	for {
		chunk, err := r.ReadBytes('\\')
		buf.Write(chunk)
		if err != nil {
			return nil, err
		}
		if bytes.HasSuffix(buf.Bytes(), []byte(frameSuffix)) {
			break
		}
	}
	frame := buf.Bytes()
	start := bytes.Index(frame, []byte(framePrefix))
	if start < 0 {
		return nil, fmt.Errorf("response frame missing prefix")
	}
	return frame[start+len(framePrefix) : len(frame)-len(frameSuffix)], nil
}

// decodeData unpacks a response payload. kitty JSON-encodes the payload into
// a string; tolerate both the encoded and the inline form.
func decodeData(data json.RawMessage, out any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty response payload")
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		return json.Unmarshal([]byte(encoded), out)
	}
	return json.Unmarshal(data, out)
}
