package compositor

import (
	"encoding/json"
	"fmt"

	"github.com/nirinav/nirinav/internal/nav"
)

// Window is niri's view of one window. PID and AppID drive the decision of
// which layer a navigation request belongs to.
type Window struct {
	ID          uint64  `json:"id"`
	Title       *string `json:"title"`
	AppID       *string `json:"app_id"`
	PID         *int32  `json:"pid"`
	WorkspaceID *uint64 `json:"workspace_id"`
	IsFocused   bool    `json:"is_focused"`
	IsFloating  bool    `json:"is_floating"`
	IsUrgent    bool    `json:"is_urgent"`
}

// App returns the window's app id, or empty when the window has none.
func (w *Window) App() string {
	if w == nil || w.AppID == nil {
		return ""
	}
	return *w.AppID
}

// Pid returns the window's process id, or zero when unknown.
func (w *Window) Pid() int {
	if w == nil || w.PID == nil {
		return 0
	}
	return int(*w.PID)
}

// Workspace is niri's view of one workspace.
type Workspace struct {
	ID             uint64  `json:"id"`
	Idx            uint8   `json:"idx"`
	Name           *string `json:"name"`
	Output         *string `json:"output"`
	IsActive       bool    `json:"is_active"`
	IsFocused      bool    `json:"is_focused"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}

// LogicalOutput is the logical geometry of an output.
type LogicalOutput struct {
	X      int32   `json:"x"`
	Y      int32   `json:"y"`
	Width  uint32  `json:"width"`
	Height uint32  `json:"height"`
	Scale  float64 `json:"scale"`
}

// Output is niri's view of one connected output.
type Output struct {
	Name    string         `json:"name"`
	Make    string         `json:"make"`
	Model   string         `json:"model"`
	Logical *LogicalOutput `json:"logical"`
}

// reply is one line of {"Ok": ...} or {"Err": "..."}. The Ok payload is kept
// raw: unit responses arrive as the bare string "Handled" while data
// responses arrive as a single-key object named after the variant.
type reply struct {
	Ok  json.RawMessage `json:"Ok"`
	Err *string         `json:"Err"`
}

// request variants. Unit variants encode as plain JSON strings, the action
// variant as a single-key object, mirroring niri's serialization.
const (
	requestFocusedWindow = "FocusedWindow"
	requestWindows       = "Windows"
	requestWorkspaces    = "Workspaces"
	requestOutputs       = "Outputs"
	requestVersion       = "Version"
)

type actionRequest struct {
	Action map[string]any `json:"Action"`
}

// decodeResponse unpacks the Ok payload for the named response variant.
func decodeResponse(raw json.RawMessage, variant string, out any) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return fmt.Errorf("compositor response: %w: %v", nav.ErrProtocol, err)
	}
	payload, ok := tagged[variant]
	if !ok {
		return fmt.Errorf("compositor response: %w: missing %s payload", nav.ErrProtocol, variant)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("compositor response: %w: %v", nav.ErrProtocol, err)
	}
	return nil
}

// isHandled reports whether the Ok payload is the bare "Handled" string niri
// sends back for actions.
func isHandled(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s == "Handled"
}
