package resolver

import (
	"context"
	"fmt"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/nav"
	"github.com/nirinav/nirinav/internal/tmux"
)

// layer pairs a chain position with its deferred probe invocation.
type layer struct {
	name  Layer
	probe func(ctx context.Context) (nav.Decision, error)
}

// baseWindow locates the window under resolution: the focused one, or an
// explicit id override. Failure here is fatal; without the window there is
// no chain to classify.
func (r *Resolver) baseWindow(ctx context.Context, id nav.WindowID) (*compositor.Window, error) {
	if id == 0 {
		return r.compositor.FocusedWindow(ctx)
	}
	windows, err := r.compositor.Windows(ctx)
	if err != nil {
		return nil, err
	}
	for i := range windows {
		if windows[i].ID == uint64(id) {
			return &windows[i], nil
		}
	}
	return nil, fmt.Errorf("window %d not found", id)
}

// chain classifies the window and builds the inner layers behind it, inside
// out. The compositor itself is not part of the chain; it is the dispatch
// of last resort.
func (r *Resolver) chain(ctx context.Context, window *compositor.Window, op operation, direction nav.Direction) []layer {
	if window == nil {
		colors.StructuredDebug("resolver", "classify", "no-window", nil, "", nil)
		return nil
	}

	app := window.App()
	fields := map[string]interface{}{"app_id": app, "pid": window.Pid(), "window_id": window.ID}

	switch {
	case contains(r.cfg.EditorAppIDs, app):
		colors.StructuredDebug("resolver", "classify", "editor-window", nil, app, fields)
		return r.editorChain(window, op, direction)
	case contains(r.cfg.TerminalAppIDs, app):
		colors.StructuredDebug("resolver", "classify", "terminal-window", nil, app, fields)
		return r.terminalChain(ctx, window, op, direction)
	default:
		colors.StructuredDebug("resolver", "classify", "plain-window", nil, app, fields)
		return nil
	}
}

// editorChain handles windows that are editor instances themselves, with no
// terminal in between.
func (r *Resolver) editorChain(window *compositor.Window, op operation, direction nav.Direction) []layer {
	pid, ok := r.findEditor(window.Pid())
	if !ok {
		return nil
	}
	return []layer{r.editorLayer(pid, op, direction)}
}

// terminalChain handles terminal windows. The editor and multiplexer layers
// are added when their processes are found underneath the window.
func (r *Resolver) terminalChain(ctx context.Context, window *compositor.Window, op operation, direction nav.Direction) []layer {
	var chain []layer

	tree, err := r.snapshot()
	if err != nil {
		colors.StructuredWarn("resolver", "classify", "no-process-tree", err, "", nil)
		return append(chain, r.terminalLayer(window, op, direction))
	}

	editorRoot := window.Pid()
	mux, target, muxOK := r.findMultiplexer(ctx, tree, window.Pid())
	if muxOK {
		if pid, err := mux.ActivePanePID(ctx); err == nil {
			editorRoot = pid
		} else {
			colors.StructuredWarn("resolver", "classify", "no-active-pane", err, target.Session(), nil)
		}
	}

	if pid, ok := tree.Find(editorRoot, r.cfg.EditorCommands...); ok && r.editor != nil {
		chain = append(chain, r.editorLayer(pid, op, direction))
	}
	if muxOK {
		chain = append(chain, r.multiplexerLayer(mux, op, direction))
	}
	return append(chain, r.terminalLayer(window, op, direction))
}

// findEditor locates the editor process under root.
func (r *Resolver) findEditor(root int) (int, bool) {
	if r.editor == nil || root == 0 {
		return 0, false
	}
	tree, err := r.snapshot()
	if err != nil {
		colors.StructuredWarn("resolver", "classify", "no-process-tree", err, "", nil)
		return 0, false
	}
	return tree.Find(root, r.cfg.EditorCommands...)
}

// findMultiplexer locates a multiplexer client under root and arms its
// probe from the $TMUX value in the client's environment.
func (r *Resolver) findMultiplexer(ctx context.Context, tree ProcessTree, root int) (MultiplexerProbe, tmux.Target, bool) {
	if r.multiplexer == nil || root == 0 {
		return nil, tmux.Target{}, false
	}
	pid, ok := tree.Find(root, r.cfg.MultiplexerCommands...)
	if !ok {
		return nil, tmux.Target{}, false
	}
	env, err := tree.Environ(pid)
	if err != nil {
		colors.StructuredWarn("resolver", "classify", "no-client-environ", err, "", map[string]interface{}{"pid": pid})
		return nil, tmux.Target{}, false
	}
	target, err := tmux.ParseTarget(env["TMUX"])
	if err != nil {
		colors.StructuredWarn("resolver", "classify", "bad-tmux-target", err, "", map[string]interface{}{"pid": pid})
		return nil, tmux.Target{}, false
	}
	probe, err := r.multiplexer(ctx, target)
	if err != nil {
		colors.StructuredWarn("resolver", "classify", "no-multiplexer-probe", err, target.Session(), nil)
		return nil, tmux.Target{}, false
	}
	return probe, target, true
}

// editorLayer defers editor probe construction into the walk; a failed dial
// reads as unavailable and escalates.
func (r *Resolver) editorLayer(pid int, op operation, direction nav.Direction) layer {
	return layer{name: LayerEditor, probe: func(ctx context.Context) (nav.Decision, error) {
		probe, err := r.editor(ctx, pid)
		if err != nil {
			return nav.Unavailable, err
		}
		defer probe.Close()
		if op == opClose {
			return probe.CloseSplit(ctx)
		}
		return probe.Navigate(ctx, direction)
	}}
}

func (r *Resolver) multiplexerLayer(probe MultiplexerProbe, op operation, direction nav.Direction) layer {
	return layer{name: LayerMultiplexer, probe: func(ctx context.Context) (nav.Decision, error) {
		if op == opClose {
			return probe.ClosePane(ctx)
		}
		return probe.Navigate(ctx, direction)
	}}
}

func (r *Resolver) terminalLayer(window *compositor.Window, op operation, direction nav.Direction) layer {
	return layer{name: LayerTerminal, probe: func(ctx context.Context) (nav.Decision, error) {
		if r.terminal == nil {
			return nav.Unavailable, fmt.Errorf("terminal layer not wired")
		}
		probe, err := r.terminal(ctx, window)
		if err != nil {
			return nav.Unavailable, err
		}
		if op == opClose {
			return probe.CloseWindow(ctx)
		}
		return probe.Navigate(ctx, direction)
	}}
}
