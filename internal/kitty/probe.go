package kitty

import (
	"context"
	"fmt"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
)

// neighborNames maps directions onto kitty's neighbor match expressions.
// kitty calls the vertical neighbors top and bottom.
var neighborNames = map[nav.Direction]string{
	nav.Left:  "left",
	nav.Right: "right",
	nav.Up:    "top",
	nav.Down:  "bottom",
}

type matchPayload struct {
	Match string `json:"match"`
}

// Navigate asks kitty to move window focus in the given direction. kitty
// couples query and act: focus-window with a neighbor match either performs
// the move or reports that no window matched. At a horizontal window
// boundary the adjacent tab, when one exists, takes the motion instead.
func (c *Client) Navigate(ctx context.Context, direction nav.Direction) (nav.Decision, error) {
	name, ok := neighborNames[direction]
	if !ok {
		return nav.Unavailable, fmt.Errorf("terminal navigate: %w: unknown direction %q", nav.ErrProtocol, direction)
	}

	_, err := c.roundtrip(ctx, "focus-window", matchPayload{Match: "neighbor:" + name})
	if err == nil {
		colors.StructuredDebug("kitty", "navigate", "moved", nil, c.socketPath,
			map[string]interface{}{"direction": direction.String()})
		return nav.Move, nil
	}
	if !isNoMatch(err) {
		return nav.Unavailable, err
	}
	if !direction.Horizontal() {
		return nav.Boundary, nil
	}
	return c.navigateTab(ctx, direction)
}

// navigateTab moves to the adjacent tab when the focused window sits at a
// horizontal boundary of its tab.
func (c *Client) navigateTab(ctx context.Context, direction nav.Direction) (nav.Decision, error) {
	tree, err := c.Ls(ctx)
	if err != nil {
		return nav.Unavailable, err
	}
	osWindow, _, ok := FocusedTab(tree)
	if !ok {
		return nav.Boundary, nil
	}
	focusedIdx := -1
	for i := range osWindow.Tabs {
		if osWindow.Tabs[i].IsFocused {
			focusedIdx = i
			break
		}
	}
	if focusedIdx < 0 {
		return nav.Boundary, nil
	}

	targetIdx := focusedIdx + 1
	if direction == nav.Left {
		targetIdx = focusedIdx - 1
	}
	if targetIdx < 0 || targetIdx >= len(osWindow.Tabs) {
		return nav.Boundary, nil
	}

	_, err = c.roundtrip(ctx, "focus-tab", matchPayload{Match: fmt.Sprintf("index:%d", targetIdx)})
	if err != nil {
		if isNoMatch(err) {
			return nav.Boundary, nil
		}
		return nav.Unavailable, err
	}
	colors.StructuredDebug("kitty", "navigate", "moved_tab", nil, c.socketPath,
		map[string]interface{}{"direction": direction.String(), "tab_index": targetIdx})
	return nav.Move, nil
}

// CloseWindow closes the focused kitty window when the instance still has
// another window or tab to fall back to. At the very last window it reports
// Boundary so the close escalates to the compositor, which takes the whole
// OS window down.
func (c *Client) CloseWindow(ctx context.Context) (nav.Decision, error) {
	tree, err := c.Ls(ctx)
	if err != nil {
		return nav.Unavailable, err
	}
	osWindow, tab, ok := FocusedTab(tree)
	if !ok {
		return nav.Boundary, nil
	}
	if len(tab.Windows) <= 1 && len(osWindow.Tabs) <= 1 {
		return nav.Boundary, nil
	}

	if _, err := c.roundtrip(ctx, "close-window", nil); err != nil {
		if isNoMatch(err) {
			return nav.Boundary, nil
		}
		return nav.Unavailable, err
	}
	colors.StructuredDebug("kitty", "close-window", "closed", nil, c.socketPath, nil)
	return nav.Move, nil
}
