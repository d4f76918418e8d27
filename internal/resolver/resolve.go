package resolver

import (
	"context"
	"fmt"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

// operation selects which action each layer performs.
type operation int

const (
	opSwitch operation = iota
	opClose
)

func (op operation) String() string {
	if op == opClose {
		return "close"
	}
	return "switch"
}

// Switch resolves a directional focus request.
func (r *Resolver) Switch(ctx context.Context, req nav.Request) (*Resolution, error) {
	return r.resolve(ctx, req.Window, opSwitch, req.Direction)
}

// Close resolves a close request for the innermost unit behind the window.
func (r *Resolver) Close(ctx context.Context, window nav.WindowID) (*Resolution, error) {
	return r.resolve(ctx, window, opClose, "")
}

// resolve walks the chain inside out. The first layer that moves ends the
// walk; boundary and unavailable decisions escalate. When every inner layer
// has passed, the request is dispatched to the compositor, whose failure is
// fatal.
func (r *Resolver) resolve(ctx context.Context, windowID nav.WindowID, op operation, direction nav.Direction) (*Resolution, error) {
	window, err := r.baseWindow(ctx, windowID)
	if err != nil {
		colors.StructuredError("resolver", op.String(), "no-base-window", err, direction.String(), nil)
		return nil, fmt.Errorf("locate window: %w", err)
	}

	resolution := &Resolution{}
	for _, l := range r.chain(ctx, window, op, direction) {
		decision, err := l.probe(ctx)
		resolution.Path = append(resolution.Path, Step{Layer: l.name, Decision: decision, Err: err})

		fields := map[string]interface{}{"layer": string(l.name), "decision": decision.String()}
		if err != nil {
			fields["kind"] = nav.KindName(err)
			colors.StructuredWarn("resolver", op.String(), "layer-unavailable", err, direction.String(), fields)
		} else {
			colors.StructuredDebug("resolver", op.String(), "layer-decided", nil, direction.String(), fields)
		}

		if decision == nav.Move {
			resolution.Layer = l.name
			colors.StructuredInfo("resolver", op.String(), "completed", nil, direction.String(),
				map[string]interface{}{"layer": string(l.name), "path": resolution.String()})
			return resolution, nil
		}
	}

	if err := r.dispatch(ctx, op, direction); err != nil {
		resolution.Path = append(resolution.Path, Step{Layer: LayerCompositor, Decision: nav.Unavailable, Err: err})
		colors.StructuredError("resolver", op.String(), "dispatch-failed", err, direction.String(),
			map[string]interface{}{"path": resolution.String()})
		return resolution, fmt.Errorf("compositor dispatch: %w", err)
	}
	resolution.Path = append(resolution.Path, Step{Layer: LayerCompositor, Decision: nav.Move})
	resolution.Layer = LayerCompositor
	colors.StructuredInfo("resolver", op.String(), "completed", nil, direction.String(),
		map[string]interface{}{"layer": string(LayerCompositor), "path": resolution.String()})
	return resolution, nil
}

// dispatch is the single site performing the compositor action.
func (r *Resolver) dispatch(ctx context.Context, op operation, direction nav.Direction) error {
	if op == opClose {
		return r.compositor.CloseWindow(ctx)
	}
	return r.compositor.MoveFocus(ctx, direction)
}
