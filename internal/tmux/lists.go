package tmux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nirinav/nirinav/internal/colors"
)

// Window describes one window (tab) of the attached session.
type Window struct {
	Index  int
	Active bool
	Name   string
}

// Pane describes one pane of the attached session.
type Pane struct {
	WindowIndex int
	ID          string
	Active      bool
	PID         int
	Command     string
}

// Windows returns the windows of the attached session ordered by index.
func (p *Probe) Windows(ctx context.Context) ([]Window, error) {
	stdout, stderr, err := p.runner.Run(ctx, "list-windows", "-t", p.target.Session(),
		"-F", "#{window_index}\t#{window_active}\t#{window_name}")
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	var windows []Window
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		index, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		windows = append(windows, Window{
			Index:  index,
			Active: parts[1] == "1",
			Name:   parts[2],
		})
	}
	return windows, nil
}

// Panes returns every pane of the attached session grouped by window index.
func (p *Probe) Panes(ctx context.Context) ([]Pane, error) {
	stdout, stderr, err := p.runner.Run(ctx, "list-panes", "-s", "-t", p.target.Session(),
		"-F", "#{window_index}\t#{pane_id}\t#{pane_active}\t#{pane_pid}\t#{pane_current_command}")
	if err != nil {
		if stderr != "" {
			colors.Debug("stderr: " + stderr)
		}
		return nil, fmt.Errorf("failed to list panes: %w", err)
	}

	var panes []Pane
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 5)
		if len(parts) != 5 {
			continue
		}
		windowIndex, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		pid, err := strconv.Atoi(parts[3])
		if err != nil {
			continue
		}
		panes = append(panes, Pane{
			WindowIndex: windowIndex,
			ID:          parts[1],
			Active:      parts[2] == "1",
			PID:         pid,
			Command:     parts[4],
		})
	}
	return panes, nil
}
