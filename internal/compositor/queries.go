package compositor

import "context"

// FocusedWindow returns the currently focused window, or nil when no window
// has focus. Topology is queried fresh on every call; it can change between
// invocations.
func (c *Client) FocusedWindow(ctx context.Context) (*Window, error) {
	raw, err := c.roundtrip(ctx, requestFocusedWindow)
	if err != nil {
		return nil, err
	}
	var window *Window
	if err := decodeResponse(raw, "FocusedWindow", &window); err != nil {
		return nil, err
	}
	return window, nil
}

// Windows returns all windows known to the compositor.
func (c *Client) Windows(ctx context.Context) ([]Window, error) {
	raw, err := c.roundtrip(ctx, requestWindows)
	if err != nil {
		return nil, err
	}
	var windows []Window
	if err := decodeResponse(raw, "Windows", &windows); err != nil {
		return nil, err
	}
	return windows, nil
}

// Workspaces returns all workspaces known to the compositor.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	raw, err := c.roundtrip(ctx, requestWorkspaces)
	if err != nil {
		return nil, err
	}
	var workspaces []Workspace
	if err := decodeResponse(raw, "Workspaces", &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Outputs returns all connected outputs keyed by connector name.
func (c *Client) Outputs(ctx context.Context) (map[string]Output, error) {
	raw, err := c.roundtrip(ctx, requestOutputs)
	if err != nil {
		return nil, err
	}
	outputs := make(map[string]Output)
	if err := decodeResponse(raw, "Outputs", &outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// Version returns the compositor version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	raw, err := c.roundtrip(ctx, requestVersion)
	if err != nil {
		return "", err
	}
	var version string
	if err := decodeResponse(raw, "Version", &version); err != nil {
		return "", err
	}
	return version, nil
}
