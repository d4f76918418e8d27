// Package resolver turns one navigation request into exactly one action on
// exactly one layer. It classifies the focused compositor window, builds the
// layer chain behind it, probes the chain inside out, and escalates until a
// layer performs the move. The compositor is the final authority and its
// dispatch never escalates further.
package resolver

import (
	"context"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/nav"
	"github.com/nirinav/nirinav/internal/proctree"
	"github.com/nirinav/nirinav/internal/tmux"
)

// Compositor is the outermost layer. Queries locate the window under
// resolution; actions are the final dispatch.
type Compositor interface {
	FocusedWindow(ctx context.Context) (*compositor.Window, error)
	Windows(ctx context.Context) ([]compositor.Window, error)
	MoveFocus(ctx context.Context, direction nav.Direction) error
	CloseWindow(ctx context.Context) error
}

// TerminalProbe resolves navigation between the windows and tabs of one
// terminal instance.
type TerminalProbe interface {
	Navigate(ctx context.Context, direction nav.Direction) (nav.Decision, error)
	CloseWindow(ctx context.Context) (nav.Decision, error)
}

// MultiplexerProbe resolves navigation between the panes and windows of one
// attached multiplexer session.
type MultiplexerProbe interface {
	Navigate(ctx context.Context, direction nav.Direction) (nav.Decision, error)
	ClosePane(ctx context.Context) (nav.Decision, error)
	ActivePanePID(ctx context.Context) (int, error)
}

// EditorProbe resolves navigation between the windows of one editor
// instance. Close releases the underlying session.
type EditorProbe interface {
	Navigate(ctx context.Context, direction nav.Direction) (nav.Decision, error)
	CloseSplit(ctx context.Context) (nav.Decision, error)
	Close() error
}

// TerminalFactory opens the terminal probe for a compositor window.
type TerminalFactory func(ctx context.Context, window *compositor.Window) (TerminalProbe, error)

// MultiplexerFactory opens the multiplexer probe for an attached session.
type MultiplexerFactory func(ctx context.Context, target tmux.Target) (MultiplexerProbe, error)

// EditorFactory opens the editor probe for the instance rooted at pid.
type EditorFactory func(ctx context.Context, pid int) (EditorProbe, error)

// ProcessTree is the part of the procfs snapshot classification needs.
type ProcessTree interface {
	Find(root int, names ...string) (int, bool)
	Environ(pid int) (map[string]string, error)
}

// Config names the window classes and process names that mark the layers.
type Config struct {
	// TerminalAppIDs are compositor app ids carrying the terminal layer.
	TerminalAppIDs []string
	// EditorAppIDs are compositor app ids carrying the editor layer
	// directly, with no terminal in between.
	EditorAppIDs []string
	// EditorCommands are process names of editor instances.
	EditorCommands []string
	// MultiplexerCommands are process names of multiplexer clients.
	MultiplexerCommands []string
}

// Resolver walks the layer chain for one request. It holds no connections
// itself; probes are built per resolution through the factories.
type Resolver struct {
	compositor  Compositor
	terminal    TerminalFactory
	multiplexer MultiplexerFactory
	editor      EditorFactory
	cfg         Config
	snapshot    func() (ProcessTree, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSnapshot overrides how the process tree is read. Tests point this at
// a fixture.
func WithSnapshot(snapshot func() (ProcessTree, error)) Option {
	return func(r *Resolver) {
		r.snapshot = snapshot
	}
}

// New creates a resolver. The compositor is mandatory; a nil factory
// disables its layer, which then never appears in any chain.
func New(comp Compositor, terminal TerminalFactory, multiplexer MultiplexerFactory, editor EditorFactory, cfg Config, opts ...Option) *Resolver {
	if comp == nil {
		panic("resolver: compositor cannot be nil")
	}
	r := &Resolver{
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
		opt(r)
	}
	return r
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
