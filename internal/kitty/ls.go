package kitty

import (
	"context"
	"fmt"

	"github.com/nirinav/nirinav/internal/nav"
)

// OSWindow is one kitty OS window as reported by `ls`.
type OSWindow struct {
	ID        uint64 `json:"id"`
	IsFocused bool   `json:"is_focused"`
	Tabs      []Tab  `json:"tabs"`
}

// Tab is one tab inside an OS window.
type Tab struct {
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	IsFocused bool     `json:"is_focused"`
	Windows   []Window `json:"windows"`
}

// Window is one kitty window (pane) inside a tab.
type Window struct {
	ID                  uint64              `json:"id"`
	Title               string              `json:"title"`
	IsFocused           bool                `json:"is_focused"`
	Cwd                 string              `json:"cwd"`
	Env                 map[string]string   `json:"env"`
	ForegroundProcesses []ForegroundProcess `json:"foreground_processes"`
}

// ForegroundProcess is one process in the foreground group of a window.
type ForegroundProcess struct {
	Pid     int      `json:"pid"`
	Cwd     string   `json:"cwd"`
	Cmdline []string `json:"cmdline"`
}

// Ls returns the instance's full OS window / tab / window tree.
func (c *Client) Ls(ctx context.Context) ([]OSWindow, error) {
	data, err := c.roundtrip(ctx, "ls", nil)
	if err != nil {
		return nil, err
	}
	var tree []OSWindow
	if err := decodeData(data, &tree); err != nil {
		return nil, fmt.Errorf("terminal ls: %w: %v", nav.ErrProtocol, err)
	}
	return tree, nil
}

// FocusedTab returns the focused tab of the focused OS window.
func FocusedTab(tree []OSWindow) (*OSWindow, *Tab, bool) {
	for i := range tree {
		if !tree[i].IsFocused {
			continue
		}
		for j := range tree[i].Tabs {
			if tree[i].Tabs[j].IsFocused {
				return &tree[i], &tree[i].Tabs[j], true
			}
		}
	}
	return nil, nil, false
}

// FocusedWindow returns the focused window of the focused tab.
func FocusedWindow(tree []OSWindow) (*Window, bool) {
	_, tab, ok := FocusedTab(tree)
	if !ok {
		return nil, false
	}
	for i := range tab.Windows {
		if tab.Windows[i].IsFocused {
			return &tab.Windows[i], true
		}
	}
	return nil, false
}
