package nvim

import (
	"context"
	"fmt"
	"net"
	"time"

	gonvim "github.com/neovim/go-client/nvim"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

// DefaultTimeout bounds a whole probe conversation with one nvim instance.
// The deadline is set on the connection at dial time, so every rpc call made
// through the session is covered by it.
const DefaultTimeout = 250 * time.Millisecond

// Session is the subset of the nvim rpc api the probe needs.
type Session interface {
	// Eval evaluates a vimscript expression and decodes the result.
	Eval(expr string, result interface{}) error

	// Input queues raw keys as if typed, returning how many bytes were
	// written.
	Input(keys string) (int, error)

	// Command runs an ex command.
	Command(cmd string) error

	// Close tears the session down.
	Close() error
}

// Dialer opens a session with the nvim instance behind socketPath. Tests
// swap this out for a mock session.
type Dialer func(ctx context.Context, socketPath string, timeout time.Duration) (Session, error)

// Dial connects to a running nvim instance over its unix socket. The given
// timeout becomes an absolute deadline on the connection.
func Dial(ctx context.Context, socketPath string, timeout time.Duration) (Session, error) {
	deadline := time.Now().Add(timeout)
	session, err := gonvim.Dial(socketPath,
		gonvim.DialContext(ctx),
		gonvim.DialNetDial(func(ctx context.Context, _, addr string) (net.Conn, error) {
			var d net.Dialer
			conn, err := d.DialContext(ctx, "unix", addr)
			if err != nil {
				return nil, err
			}
			if err := conn.SetDeadline(deadline); err != nil {
				conn.Close()
				return nil, err
			}
			return conn, nil
		}))
	if err != nil {
		return nil, fmt.Errorf("editor socket %s: %w: %v", socketPath, nav.ErrConnection, err)
	}
	colors.StructuredDebug("nvim", "dial", "connected", nil, socketPath, nil)
	return session, nil
}
