// Package doctor probes every navigation layer from the focused window and
// reports which ones can be reached. It acts on nothing; the point is to
// show why a switch would or would not escalate past a layer.
package doctor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/kitty"
	"github.com/nirinav/nirinav/internal/proctree"
	"github.com/nirinav/nirinav/internal/resolver"
	"github.com/nirinav/nirinav/internal/tmux"
)

// Status classifies one layer check. Absent means the layer is simply not
// part of the focused window's stack; unreachable means it should be there
// but did not respond. The two read very differently: absent is normal,
// unreachable is a fault.
type Status string

const (
	StatusOK          Status = "ok"
	StatusAbsent      Status = "absent"
	StatusUnreachable Status = "unreachable"
)

// Check is the outcome of probing one layer.
type Check struct {
	Layer  resolver.Layer
	Status Status
	Detail string
	Err    error
}

// Compositor is the slice of the compositor client diagnosis needs.
type Compositor interface {
	FocusedWindow(ctx context.Context) (*compositor.Window, error)
	Version(ctx context.Context) (string, error)
}

// Terminal is the slice of the terminal client diagnosis needs.
type Terminal interface {
	Ls(ctx context.Context) ([]kitty.OSWindow, error)
}

// Multiplexer is the slice of the multiplexer probe diagnosis needs.
type Multiplexer interface {
	Ping(ctx context.Context) error
	Windows(ctx context.Context) ([]tmux.Window, error)
	ActivePanePID(ctx context.Context) (int, error)
}

// Editor is the slice of the editor probe diagnosis needs.
type Editor interface {
	Pid(ctx context.Context) (int, error)
	Close() error
}

// TerminalFactory opens a terminal client for one compositor window.
type TerminalFactory func(ctx context.Context, window *compositor.Window) (Terminal, error)

// MultiplexerFactory opens a multiplexer probe for one server target.
type MultiplexerFactory func(ctx context.Context, target tmux.Target) (Multiplexer, error)

// EditorFactory opens an editor probe for one editor process.
type EditorFactory func(ctx context.Context, pid int) (Editor, error)

// ProcessTree is the slice of the procfs snapshot diagnosis needs.
type ProcessTree interface {
	Find(root int, names ...string) (int, bool)
	Environ(pid int) (map[string]string, error)
}

// Config carries the window and process classification lists.
type Config struct {
	TerminalAppIDs      []string
	EditorAppIDs        []string
	EditorCommands      []string
	MultiplexerCommands []string
}

// Doctor wires the four layer clients for diagnosis.
type Doctor struct {
	compositor  Compositor
	terminal    TerminalFactory
	multiplexer MultiplexerFactory
	editor      EditorFactory
	cfg         Config

	snapshot func() (ProcessTree, error)
}

// Option adjusts a Doctor.
type Option func(*Doctor)

// WithSnapshot replaces the process tree source.
func WithSnapshot(fn func() (ProcessTree, error)) Option {
	return func(d *Doctor) { d.snapshot = fn }
}

// New builds a Doctor. The compositor is required; inner layers left nil
// report as absent.
func New(comp Compositor, terminal TerminalFactory, multiplexer MultiplexerFactory, editor EditorFactory, cfg Config, opts ...Option) *Doctor {
	if comp == nil {
		panic("doctor.New: compositor dependency cannot be nil")
	}
	d := &Doctor{
		compositor:  comp,
		terminal:    terminal,
		multiplexer: multiplexer,
		editor:      editor,
		cfg:         cfg,
		snapshot: func() (ProcessTree, error) {
			return proctree.Snapshot()
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run probes all four layers and returns one check per layer in chain
// order, the compositor last. The focused window is fetched once up front;
// the per-layer probes then run concurrently, each writing only its own
// slot.
func (d *Doctor) Run(ctx context.Context) []Check {
	window, windowErr := d.compositor.FocusedWindow(ctx)
	if windowErr != nil {
		colors.StructuredWarn("doctor", "run", "no-focused-window", windowErr, "", nil)
	}

	checks := make([]Check, 4)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		checks[0] = d.checkEditor(gctx, window)
		return nil
	})
	g.Go(func() error {
		checks[1] = d.checkMultiplexer(gctx, window)
		return nil
	})
	g.Go(func() error {
		checks[2] = d.checkTerminal(gctx, window)
		return nil
	})
	g.Go(func() error {
		checks[3] = d.checkCompositor(gctx, window, windowErr)
		return nil
	})
	_ = g.Wait()
	return checks
}

func (d *Doctor) checkCompositor(ctx context.Context, window *compositor.Window, windowErr error) Check {
	check := Check{Layer: resolver.LayerCompositor}
	if windowErr != nil {
		check.Status = StatusUnreachable
		check.Detail = windowErr.Error()
		check.Err = windowErr
		return check
	}
	version, err := d.compositor.Version(ctx)
	if err != nil {
		check.Status = StatusUnreachable
		check.Detail = err.Error()
		check.Err = err
		return check
	}
	check.Status = StatusOK
	if window == nil {
		check.Detail = fmt.Sprintf("niri %s, no focused window", version)
	} else {
		check.Detail = fmt.Sprintf("niri %s, focused %s", version, window.App())
	}
	return check
}

func (d *Doctor) checkTerminal(ctx context.Context, window *compositor.Window) Check {
	check := Check{Layer: resolver.LayerTerminal}
	if window == nil || !contains(d.cfg.TerminalAppIDs, window.App()) {
		check.Status = StatusAbsent
		check.Detail = "focused window is not a terminal"
		return check
	}
	if d.terminal == nil {
		check.Status = StatusAbsent
		check.Detail = "terminal layer not wired"
		return check
	}
	client, err := d.terminal(ctx, window)
	if err != nil {
		check.Status = StatusUnreachable
		check.Detail = err.Error()
		check.Err = err
		return check
	}
	tree, err := client.Ls(ctx)
	if err != nil {
		check.Status = StatusUnreachable
		check.Detail = err.Error()
		check.Err = err
		return check
	}
	tabs := 0
	for _, osWindow := range tree {
		tabs += len(osWindow.Tabs)
	}
	check.Status = StatusOK
	check.Detail = fmt.Sprintf("%d os windows, %d tabs", len(tree), tabs)
	return check
}

func (d *Doctor) checkMultiplexer(ctx context.Context, window *compositor.Window) Check {
	check := Check{Layer: resolver.LayerMultiplexer}
	if window == nil || window.Pid() == 0 {
		check.Status = StatusAbsent
		check.Detail = "no focused window"
		return check
	}
	tree, err := d.snapshot()
	if err != nil {
		check.Status = StatusUnreachable
		check.Detail = "cannot read process tree"
		check.Err = err
		return check
	}
	probe, target, found, err := d.discoverMultiplexer(ctx, tree, window.Pid())
	if err != nil {
		check.Status = StatusUnreachable
		check.Detail = err.Error()
		check.Err = err
		return check
	}
	if !found {
		check.Status = StatusAbsent
		check.Detail = "no multiplexer client under the focused window"
		return check
	}
	if err := probe.Ping(ctx); err != nil {
		check.Status = StatusUnreachable
		check.Detail = err.Error()
		check.Err = err
		return check
	}
	check.Status = StatusOK
	if windows, err := probe.Windows(ctx); err == nil {
		check.Detail = fmt.Sprintf("session %s, %d windows", target.Session(), len(windows))
	} else {
		check.Detail = fmt.Sprintf("session %s", target.Session())
	}
	return check
}

func (d *Doctor) checkEditor(ctx context.Context, window *compositor.Window) Check {
	check := Check{Layer: resolver.LayerEditor}
	if window == nil || window.Pid() == 0 {
		check.Status = StatusAbsent
		check.Detail = "no focused window"
		return check
	}
	if d.editor == nil {
		check.Status = StatusAbsent
		check.Detail = "editor layer not wired"
		return check
	}
	tree, err := d.snapshot()
	if err != nil {
		check.Status = StatusUnreachable
		check.Detail = "cannot read process tree"
		check.Err = err
		return check
	}

	// Inside a multiplexer the editor hangs off the server's pane process,
	// not the client under the window.
	root := window.Pid()
	if probe, _, found, err := d.discoverMultiplexer(ctx, tree, window.Pid()); err == nil && found {
		if pid, err := probe.ActivePanePID(ctx); err == nil {
			root = pid
		}
	}

	pid, ok := tree.Find(root, d.cfg.EditorCommands...)
	if !ok {
		check.Status = StatusAbsent
		check.Detail = "no editor process under the focused window"
		return check
	}
	probe, err := d.editor(ctx, pid)
	if err != nil {
		check.Status = StatusUnreachable
		check.Detail = err.Error()
		check.Err = err
		return check
	}
	defer probe.Close()
	if _, err := probe.Pid(ctx); err != nil {
		check.Status = StatusUnreachable
		check.Detail = err.Error()
		check.Err = err
		return check
	}
	check.Status = StatusOK
	check.Detail = fmt.Sprintf("responding, pid %d", pid)
	return check
}

// discoverMultiplexer locates a multiplexer client under root and arms its
// probe from the $TMUX value in the client's environment. A missing client
// is not an error; a client whose target cannot be read is.
func (d *Doctor) discoverMultiplexer(ctx context.Context, tree ProcessTree, root int) (Multiplexer, tmux.Target, bool, error) {
	if d.multiplexer == nil {
		return nil, tmux.Target{}, false, nil
	}
	pid, ok := tree.Find(root, d.cfg.MultiplexerCommands...)
	if !ok {
		return nil, tmux.Target{}, false, nil
	}
	env, err := tree.Environ(pid)
	if err != nil {
		return nil, tmux.Target{}, false, fmt.Errorf("client pid %d: %w", pid, err)
	}
	target, err := tmux.ParseTarget(env["TMUX"])
	if err != nil {
		return nil, tmux.Target{}, false, fmt.Errorf("client pid %d: %w", pid, err)
	}
	probe, err := d.multiplexer(ctx, target)
	if err != nil {
		return nil, tmux.Target{}, false, err
	}
	colors.StructuredDebug("doctor", "discover", "multiplexer-client", nil, target.Session(),
		map[string]interface{}{"pid": pid})
	return probe, target, true, nil
}

// Healthy reports whether the compositor responded. The inner layers are
// optional per window arrangement; the compositor is not.
func Healthy(checks []Check) bool {
	for _, check := range checks {
		if check.Layer == resolver.LayerCompositor {
			return check.Status == StatusOK
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
