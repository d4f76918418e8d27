package compositor

import (
	"context"
	"fmt"

	"github.com/nirinav/nirinav/internal/nav"
)

// focusActions maps a direction onto niri's focus action. Horizontal motion
// walks columns and spills onto the neighboring monitor; vertical motion
// walks windows within the column and spills onto the neighboring workspace.
var focusActions = map[nav.Direction]string{
	nav.Left:  "FocusColumnOrMonitorLeft",
	nav.Right: "FocusColumnOrMonitorRight",
	nav.Up:    "FocusWindowOrWorkspaceUp",
	nav.Down:  "FocusWindowOrWorkspaceDown",
}

// MoveFocus asks the compositor to move focus in the given direction. At a
// screen edge niri acknowledges and does nothing; that still counts as a
// handled request.
func (c *Client) MoveFocus(ctx context.Context, direction nav.Direction) error {
	name, ok := focusActions[direction]
	if !ok {
		return fmt.Errorf("compositor action: %w: no focus action for direction %q", nav.ErrProtocol, direction)
	}
	return c.action(ctx, name, map[string]any{})
}

// FocusWindow asks the compositor to focus the window with the given id.
func (c *Client) FocusWindow(ctx context.Context, id nav.WindowID) error {
	return c.action(ctx, "FocusWindow", map[string]any{"id": uint64(id)})
}

// CloseWindow asks the compositor to close the focused window.
func (c *Client) CloseWindow(ctx context.Context) error {
	return c.action(ctx, "CloseWindow", map[string]any{"id": nil})
}

func (c *Client) action(ctx context.Context, name string, payload map[string]any) error {
	raw, err := c.roundtrip(ctx, actionRequest{Action: map[string]any{name: payload}})
	if err != nil {
		return err
	}
	if !isHandled(raw) {
		return fmt.Errorf("compositor action %s: %w: unexpected acknowledgment %s", name, nav.ErrProtocol, string(raw))
	}
	return nil
}
