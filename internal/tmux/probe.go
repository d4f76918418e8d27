package tmux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

// paneEdgeFormats maps a direction onto the tmux format flag reporting
// whether the active pane touches that edge of the window.
var paneEdgeFormats = map[nav.Direction]string{
	nav.Left:  "#{pane_at_left}",
	nav.Right: "#{pane_at_right}",
	nav.Up:    "#{pane_at_top}",
	nav.Down:  "#{pane_at_bottom}",
}

// selectPaneFlags maps a direction onto the select-pane flag that moves
// focus one pane that way.
var selectPaneFlags = map[nav.Direction]string{
	nav.Left:  "-L",
	nav.Right: "-R",
	nav.Up:    "-U",
	nav.Down:  "-D",
}

// Probe resolves navigation against the panes and windows of one attached
// tmux session.
type Probe struct {
	runner Runner
	target Target
}

// NewProbe creates a probe for the session described by target.
func NewProbe(runner Runner, target Target) *Probe {
	if runner == nil {
		panic("tmux: runner cannot be nil")
	}
	return &Probe{runner: runner, target: target}
}

// Target returns the server and session the probe talks to.
func (p *Probe) Target() Target {
	return p.target
}

// Navigate moves pane focus one step in the given direction.
//
// When the active pane is not at the window edge, the neighbouring pane is
// focused. At a horizontal edge, focus falls back to the adjacent window
// when one exists. A vertical edge and a missing adjacent window are
// boundaries for the outer layers to resolve.
func (p *Probe) Navigate(ctx context.Context, direction nav.Direction) (decision nav.Decision, err error) {
	fields := map[string]interface{}{"direction": direction.String(), "session": p.target.Session()}
	colors.StructuredDebug("tmux", "navigate", "started", nil, "", fields)
	defer func() {
		if err != nil {
			colors.StructuredDebug("tmux", "navigate", "failed", err, "", fields)
			return
		}
		fields["decision"] = decision.String()
		colors.StructuredDebug("tmux", "navigate", "completed", nil, "", fields)
	}()

	atEdge, err := p.paneAtEdge(ctx, direction)
	if err != nil {
		return nav.Unavailable, err
	}

	if !atEdge {
		if err := p.selectPane(ctx, direction); err != nil {
			return nav.Unavailable, err
		}
		return nav.Move, nil
	}

	if !direction.Horizontal() {
		return nav.Boundary, nil
	}
	return p.navigateWindow(ctx, direction)
}

// paneAtEdge reports whether the active pane touches the window edge in the
// given direction.
func (p *Probe) paneAtEdge(ctx context.Context, direction nav.Direction) (bool, error) {
	stdout, stderr, err := p.runner.Run(ctx, "display-message", "-p", "-t", p.target.Session(), paneEdgeFormats[direction])
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return false, fmt.Errorf("failed to query pane edge: %w", err)
	}
	switch strings.TrimSpace(stdout) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("pane edge query: %w: unexpected output %q", nav.ErrProtocol, stdout)
	}
}

// selectPane moves pane focus one step in the given direction.
func (p *Probe) selectPane(ctx context.Context, direction nav.Direction) error {
	_, stderr, err := p.runner.Run(ctx, "select-pane", selectPaneFlags[direction], "-t", p.target.Session())
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return fmt.Errorf("failed to select pane: %w", err)
	}
	return nil
}

// navigateWindow falls back to the adjacent window after pane focus hit a
// horizontal edge.
func (p *Probe) navigateWindow(ctx context.Context, direction nav.Direction) (nav.Decision, error) {
	windows, err := p.Windows(ctx)
	if err != nil {
		return nav.Unavailable, err
	}

	current := -1
	for _, w := range windows {
		if w.Active {
			current = w.Index
			break
		}
	}
	if current < 0 {
		return nav.Unavailable, fmt.Errorf("window list: %w: no active window", nav.ErrProtocol)
	}

	hasNeighbor := false
	for _, w := range windows {
		if (direction == nav.Left && w.Index < current) || (direction == nav.Right && w.Index > current) {
			hasNeighbor = true
			break
		}
	}
	if !hasNeighbor {
		return nav.Boundary, nil
	}

	command := "previous-window"
	if direction == nav.Right {
		command = "next-window"
	}
	if _, stderr, err := p.runner.Run(ctx, command, "-t", p.target.Session()); err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return nav.Unavailable, fmt.Errorf("failed to select window: %w", err)
	}
	return nav.Move, nil
}

// ActivePanePID returns the pid of the process running in the active pane.
// Editor discovery starts from this pid when a multiplexer fronts the
// terminal window.
func (p *Probe) ActivePanePID(ctx context.Context) (int, error) {
	stdout, stderr, err := p.runner.Run(ctx, "display-message", "-p", "-t", p.target.Session(), "#{pane_pid}")
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return 0, fmt.Errorf("failed to query pane pid: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(stdout))
	if err != nil {
		return 0, fmt.Errorf("pane pid query: %w: unexpected output %q", nav.ErrProtocol, stdout)
	}
	return pid, nil
}

// ClosePane closes the active pane, falling back to the active window when
// the pane is the last one. The last pane of the last window is a boundary
// and closing escalates to the outer layers.
func (p *Probe) ClosePane(ctx context.Context) (decision nav.Decision, err error) {
	fields := map[string]interface{}{"session": p.target.Session()}
	colors.StructuredDebug("tmux", "close", "started", nil, "", fields)
	defer func() {
		if err != nil {
			colors.StructuredDebug("tmux", "close", "failed", err, "", fields)
			return
		}
		fields["decision"] = decision.String()
		colors.StructuredDebug("tmux", "close", "completed", nil, "", fields)
	}()

	stdout, stderr, err := p.runner.Run(ctx, "display-message", "-p", "-t", p.target.Session(), "#{window_panes}")
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return nav.Unavailable, fmt.Errorf("failed to query pane count: %w", err)
	}
	paneCount, err := strconv.Atoi(strings.TrimSpace(stdout))
	if err != nil {
		return nav.Unavailable, fmt.Errorf("pane count query: %w: unexpected output %q", nav.ErrProtocol, stdout)
	}

	if paneCount > 1 {
		if _, stderr, err := p.runner.Run(ctx, "kill-pane", "-t", p.target.Session()); err != nil {
			if stderr != "" {
				colors.Debug("stderr: " + stderr)
			}
			return nav.Unavailable, fmt.Errorf("failed to kill pane: %w", err)
		}
		return nav.Move, nil
	}

	windows, err := p.Windows(ctx)
	if err != nil {
		return nav.Unavailable, err
	}
	if len(windows) > 1 {
		if _, stderr, err := p.runner.Run(ctx, "kill-window", "-t", p.target.Session()); err != nil {
			if stderr != "" {
				colors.Debug("stderr: " + stderr)
			}
			return nav.Unavailable, fmt.Errorf("failed to kill window: %w", err)
		}
		return nav.Move, nil
	}

	return nav.Boundary, nil
}

// Ping reports whether the server answers for the attached session.
func (p *Probe) Ping(ctx context.Context) error {
	_, stderr, err := p.runner.Run(ctx, "has-session", "-t", p.target.Session())
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return fmt.Errorf("tmux server unavailable: %w", err)
	}
	return nil
}
