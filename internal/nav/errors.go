package nav

import (
	"context"
	"errors"
	"net"
	"os"
)

// Transport error kinds shared by every layer client.
var (
	// ErrConnection is returned when a control socket is absent, refused,
	// or drops mid-request.
	ErrConnection = errors.New("connection error")

	// ErrTimeout is returned when a layer does not answer within the probe
	// timeout.
	ErrTimeout = errors.New("query timeout")

	// ErrProtocol is returned when a layer answers with a malformed or
	// unexpected response.
	ErrProtocol = errors.New("protocol error")
)

// Classify maps an arbitrary transport failure onto one of the three error
// kinds. Errors already wrapping a kind keep it; context deadlines and net
// timeouts become ErrTimeout; dial and filesystem failures become
// ErrConnection; everything else is a protocol-level surprise.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConnection), errors.Is(err, ErrTimeout), errors.Is(err, ErrProtocol):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, os.ErrDeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, os.ErrNotExist):
		return ErrConnection
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection
	}
	return ErrProtocol
}

// KindName returns the short name of an error's kind for diagnostics.
func KindName(err error) string {
	switch Classify(err) {
	case nil:
		return "ok"
	case ErrConnection:
		return "connection"
	case ErrTimeout:
		return "timeout"
	default:
		return "protocol"
	}
}
