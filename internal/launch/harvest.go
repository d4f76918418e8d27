// Package launch spawns or focuses terminal and editor windows, carrying
// over the environment and working directory of the window the user is
// looking at.
package launch

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/kitty"
)

// scrubbedVars are per-instance variables that must never leak into a new
// window: they would point the child at the parent's sockets and ids.
var scrubbedVars = []string{
	"KITTY_WINDOW_ID",
	"KITTY_PID",
	"NVIM",
	"TMUX",
	"TMUX_PANE",
	"WINDOWID",
}

// Harvest is the environment and working directory captured from the
// focused window, ready to hand to a newly launched process.
type Harvest struct {
	Env map[string]string
	Cwd string

	// FromTerminal reports whether the harvest came out of a terminal
	// instance. A terminal launch never reuses that same instance.
	FromTerminal bool
}

// Sorted returns the harvested environment as KEY=VALUE strings in key
// order.
func (h *Harvest) Sorted() []string {
	keys := make([]string, 0, len(h.Env))
	for k := range h.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+h.Env[k])
	}
	return lines
}

// scrub drops the per-instance variables from env in place and returns it.
func scrub(env map[string]string) map[string]string {
	for _, k := range scrubbedVars {
		delete(env, k)
	}
	return env
}

// Harvest captures env and cwd from the focused window. A window that is a
// terminal instance yields the focused terminal window's view; anything
// else yields the procfs view of the process behind it, preferring an
// editor process when one runs underneath. Failures degrade to an empty
// harvest: launching fresh is always possible.
func (l *Launcher) Harvest(ctx context.Context) (*Harvest, error) {
	window, err := l.compositor.FocusedWindow(ctx)
	if err != nil {
		colors.StructuredWarn("launch", "harvest", "no-focused-window", err, "", nil)
		return &Harvest{Env: map[string]string{}}, nil
	}
	if window == nil {
		return &Harvest{Env: map[string]string{}}, nil
	}

	if contains(l.cfg.TerminalAppIDs, window.App()) {
		harvest, err := l.harvestTerminal(ctx, window)
		if err == nil {
			return harvest, nil
		}
		colors.StructuredWarn("launch", "harvest", "terminal-unreachable", err, window.App(), nil)
	}
	return l.harvestProc(window.Pid()), nil
}

// harvestTerminal reads env and cwd of the focused terminal window from the
// instance's own view of itself.
func (l *Launcher) harvestTerminal(ctx context.Context, window *compositor.Window) (*Harvest, error) {
	client, err := l.terminal(ctx, window)
	if err != nil {
		return nil, err
	}
	tree, err := client.Ls(ctx)
	if err != nil {
		return nil, err
	}
	focused, ok := kitty.FocusedWindow(tree)
	if !ok {
		return nil, fmt.Errorf("terminal reports no focused window")
	}

	env := make(map[string]string, len(focused.Env))
	for k, v := range focused.Env {
		env[k] = v
	}
	colors.StructuredDebug("launch", "harvest", "from-terminal", nil, focused.Cwd,
		map[string]interface{}{"vars": len(env)})
	return &Harvest{Env: scrub(env), Cwd: focused.Cwd, FromTerminal: true}, nil
}

// harvestProc reads env and cwd out of procfs, rooted at the editor process
// under pid when one exists, else at pid itself.
func (l *Launcher) harvestProc(pid int) *Harvest {
	harvest := &Harvest{Env: map[string]string{}}
	if pid == 0 {
		return harvest
	}
	tree, err := l.snapshot()
	if err != nil {
		colors.StructuredWarn("launch", "harvest", "no-process-tree", err, "", nil)
		return harvest
	}

	source := pid
	if editor, ok := tree.Find(pid, l.cfg.EditorCommands...); ok {
		source = editor
	}

	if env, err := tree.Environ(source); err == nil {
		harvest.Env = scrub(env)
	} else {
		colors.StructuredWarn("launch", "harvest", "no-environ", err, "", map[string]interface{}{"pid": source})
	}
	if cwd, err := tree.Cwd(source); err == nil {
		harvest.Cwd = cwd
	} else {
		colors.StructuredWarn("launch", "harvest", "no-cwd", err, "", map[string]interface{}{"pid": source})
	}
	colors.StructuredDebug("launch", "harvest", "from-proc", nil, harvest.Cwd,
		map[string]interface{}{"pid": source, "vars": len(harvest.Env)})
	return harvest
}

// mergedEnviron overlays the harvested variables onto the current process
// environment and returns sorted KEY=VALUE strings for exec.
func mergedEnviron(harvest *Harvest) []string {
	env := make(map[string]string)
	for _, entry := range os.Environ() {
		for i := 0; i < len(entry); i++ {
			if entry[i] == '=' {
				env[entry[:i]] = entry[i+1:]
				break
			}
		}
	}
	for k, v := range harvest.Env {
		env[k] = v
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	merged := make([]string, 0, len(keys))
	for _, k := range keys {
		merged = append(merged, k+"="+env[k])
	}
	return merged
}
