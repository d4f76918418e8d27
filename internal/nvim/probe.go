package nvim

import (
	"context"
	"fmt"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

// winnrArgs maps a direction onto the winnr() argument naming the window
// one step that way.
var winnrArgs = map[nav.Direction]string{
	nav.Left:  "h",
	nav.Right: "l",
	nav.Up:    "k",
	nav.Down:  "j",
}

// inputKeys maps a direction onto the key sequence that moves window focus.
// The escape prefix leaves insert mode first so ctrl-w is not swallowed.
var inputKeys = map[nav.Direction]string{
	nav.Left:  "<Esc><C-w><Left>",
	nav.Right: "<Esc><C-w><Right>",
	nav.Up:    "<Esc><C-w><Up>",
	nav.Down:  "<Esc><C-w><Down>",
}

// Probe resolves navigation against the windows of one nvim instance.
type Probe struct {
	session Session
}

// NewProbe creates a probe over an established session.
func NewProbe(session Session) *Probe {
	if session == nil {
		panic("nvim: session cannot be nil")
	}
	return &Probe{session: session}
}

// Navigate moves window focus one step in the given direction. When the
// current window already touches that side, the move is a boundary for the
// outer layers to resolve.
func (p *Probe) Navigate(ctx context.Context, direction nav.Direction) (decision nav.Decision, err error) {
	fields := map[string]interface{}{"direction": direction.String()}
	colors.StructuredDebug("nvim", "navigate", "started", nil, "", fields)
	defer func() {
		if err != nil {
			colors.StructuredDebug("nvim", "navigate", "failed", err, "", fields)
			return
		}
		fields["decision"] = decision.String()
		colors.StructuredDebug("nvim", "navigate", "completed", nil, "", fields)
	}()

	if err := ctx.Err(); err != nil {
		return nav.Unavailable, err
	}

	var current, neighbor int
	if err := p.session.Eval("winnr()", &current); err != nil {
		return nav.Unavailable, wrapRPC("eval winnr", err)
	}
	expr := fmt.Sprintf("winnr('%s')", winnrArgs[direction])
	if err := p.session.Eval(expr, &neighbor); err != nil {
		return nav.Unavailable, wrapRPC("eval "+expr, err)
	}

	if neighbor == current {
		return nav.Boundary, nil
	}

	if _, err := p.session.Input(inputKeys[direction]); err != nil {
		return nav.Unavailable, wrapRPC("input", err)
	}
	return nav.Move, nil
}

// CloseSplit closes the current window. The last remaining window is a
// boundary: closing it would kill the whole instance, which belongs to the
// outer layers.
func (p *Probe) CloseSplit(ctx context.Context) (decision nav.Decision, err error) {
	colors.StructuredDebug("nvim", "close", "started", nil, "", nil)
	defer func() {
		if err != nil {
			colors.StructuredDebug("nvim", "close", "failed", err, "", nil)
			return
		}
		colors.StructuredDebug("nvim", "close", "completed", nil, "", map[string]interface{}{"decision": decision.String()})
	}()

	if err := ctx.Err(); err != nil {
		return nav.Unavailable, err
	}

	count, err := p.WindowCount(ctx)
	if err != nil {
		return nav.Unavailable, err
	}
	if count <= 1 {
		return nav.Boundary, nil
	}
	if err := p.session.Command("close"); err != nil {
		return nav.Unavailable, wrapRPC("close window", err)
	}
	return nav.Move, nil
}

// WindowCount returns the number of windows in the current tabpage.
func (p *Probe) WindowCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var count int
	if err := p.session.Eval("winnr('$')", &count); err != nil {
		return 0, wrapRPC("eval winnr('$')", err)
	}
	return count, nil
}

// Cwd returns the working directory of the instance, for spawning siblings
// next to it.
func (p *Probe) Cwd(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var cwd string
	if err := p.session.Eval("getcwd()", &cwd); err != nil {
		return "", wrapRPC("eval getcwd()", err)
	}
	return cwd, nil
}

// Pid returns the pid of the instance, for harvesting its environment.
func (p *Probe) Pid(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var pid int
	if err := p.session.Eval("getpid()", &pid); err != nil {
		return 0, wrapRPC("eval getpid()", err)
	}
	return pid, nil
}

// Close releases the underlying session.
func (p *Probe) Close() error {
	return p.session.Close()
}

// wrapRPC classifies a session error onto the shared error kinds while
// keeping the original message.
func wrapRPC(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, nav.Classify(err), err)
}
