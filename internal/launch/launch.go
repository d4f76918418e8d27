package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/kitty"
	"github.com/nirinav/nirinav/internal/nav"
	"github.com/nirinav/nirinav/internal/proctree"
)

// Compositor is the slice of the compositor client launching needs.
type Compositor interface {
	FocusedWindow(ctx context.Context) (*compositor.Window, error)
	Windows(ctx context.Context) ([]compositor.Window, error)
	Workspaces(ctx context.Context) ([]compositor.Workspace, error)
	FocusWindow(ctx context.Context, id nav.WindowID) error
}

// Terminal is the slice of the terminal client launching needs.
type Terminal interface {
	Ls(ctx context.Context) ([]kitty.OSWindow, error)
}

// TerminalFactory opens a terminal client for one compositor window.
type TerminalFactory func(ctx context.Context, window *compositor.Window) (Terminal, error)

// ProcessTree is the slice of the procfs snapshot harvesting needs.
type ProcessTree interface {
	Find(root int, names ...string) (int, bool)
	Environ(pid int) (map[string]string, error)
	Cwd(pid int) (string, error)
}

// ExecFunc replaces the current process image. Swapped out in tests.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// Config carries the window classification lists and launch commands.
type Config struct {
	TerminalAppIDs []string
	EditorCommands []string

	TerminalCommand string
	EditorCommand   string
}

// Launcher spawns terminal and editor windows seeded with the focused
// window's environment, reusing an existing terminal when one already sits
// on the right workspace in the right directory.
type Launcher struct {
	compositor Compositor
	terminal   TerminalFactory
	cfg        Config

	snapshot func() (ProcessTree, error)
	exec     ExecFunc
	lookPath func(file string) (string, error)
	chdir    func(dir string) error
}

// Option adjusts a Launcher.
type Option func(*Launcher)

// WithSnapshot replaces the process tree source.
func WithSnapshot(fn func() (ProcessTree, error)) Option {
	return func(l *Launcher) { l.snapshot = fn }
}

// WithExec replaces the process image swap.
func WithExec(fn ExecFunc) Option {
	return func(l *Launcher) { l.exec = fn }
}

// WithLookPath replaces command resolution.
func WithLookPath(fn func(file string) (string, error)) Option {
	return func(l *Launcher) { l.lookPath = fn }
}

// WithChdir replaces the working directory change before exec.
func WithChdir(fn func(dir string) error) Option {
	return func(l *Launcher) { l.chdir = fn }
}

// New builds a Launcher. The compositor and terminal factory are required.
func New(comp Compositor, terminal TerminalFactory, cfg Config, opts ...Option) *Launcher {
	if comp == nil {
		panic("launch.New: compositor dependency cannot be nil")
	}
	if terminal == nil {
		panic("launch.New: terminal factory dependency cannot be nil")
	}
	l := &Launcher{
		compositor: comp,
		terminal:   terminal,
		cfg:        cfg,
		snapshot: func() (ProcessTree, error) {
			return proctree.Snapshot()
		},
		exec:     unix.Exec,
		lookPath: exec.LookPath,
		chdir:    os.Chdir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Terminal opens a terminal seeded with the focused window's env and cwd.
// When the harvest came from somewhere other than a terminal and another
// terminal instance already sits on the active workspace in the same
// directory, that instance is focused instead of spawning a new one.
func (l *Launcher) Terminal(ctx context.Context) error {
	harvest, err := l.Harvest(ctx)
	if err != nil {
		return err
	}

	if !harvest.FromTerminal && harvest.Cwd != "" {
		if id, ok := l.reusableTerminal(ctx, harvest.Cwd); ok {
			colors.StructuredInfo("launch", "terminal", "reused", nil, harvest.Cwd,
				map[string]interface{}{"window_id": uint64(id)})
			return l.compositor.FocusWindow(ctx, id)
		}
	}

	argv := []string{l.cfg.TerminalCommand}
	for _, pair := range harvest.Sorted() {
		argv = append(argv, "-o", "env="+pair)
	}
	if harvest.Cwd != "" {
		argv = append(argv, "-d", harvest.Cwd)
	}
	return l.execute(argv, os.Environ(), "")
}

// Editor opens the editor with the harvested env overlaid on the current
// environment, started in the harvested directory.
func (l *Launcher) Editor(ctx context.Context) error {
	harvest, err := l.Harvest(ctx)
	if err != nil {
		return err
	}
	return l.execute([]string{l.cfg.EditorCommand}, mergedEnviron(harvest), harvest.Cwd)
}

// reusableTerminal scans the active workspace for a non-focused terminal
// instance with a window in dir. Each candidate instance is asked for its
// own window list; instances that cannot be reached are skipped.
func (l *Launcher) reusableTerminal(ctx context.Context, dir string) (nav.WindowID, bool) {
	workspaces, err := l.compositor.Workspaces(ctx)
	if err != nil {
		colors.StructuredWarn("launch", "terminal", "no-workspaces", err, "", nil)
		return 0, false
	}
	active, ok := activeWorkspace(workspaces)
	if !ok {
		return 0, false
	}

	windows, err := l.compositor.Windows(ctx)
	if err != nil {
		colors.StructuredWarn("launch", "terminal", "no-windows", err, "", nil)
		return 0, false
	}
	for i := range windows {
		window := &windows[i]
		if window.IsFocused || window.WorkspaceID == nil || *window.WorkspaceID != active {
			continue
		}
		if !contains(l.cfg.TerminalAppIDs, window.App()) {
			continue
		}
		if l.instanceHasCwd(ctx, window, dir) {
			return nav.WindowID(window.ID), true
		}
	}
	return 0, false
}

// instanceHasCwd reports whether any window of the terminal instance behind
// window runs in dir.
func (l *Launcher) instanceHasCwd(ctx context.Context, window *compositor.Window, dir string) bool {
	client, err := l.terminal(ctx, window)
	if err != nil {
		colors.StructuredDebug("launch", "terminal", "candidate-unreachable", err, window.App(),
			map[string]interface{}{"window_id": window.ID})
		return false
	}
	tree, err := client.Ls(ctx)
	if err != nil {
		return false
	}
	for _, osWindow := range tree {
		for _, tab := range osWindow.Tabs {
			for _, w := range tab.Windows {
				if w.Cwd == dir {
					return true
				}
			}
		}
	}
	return false
}

// execute resolves argv[0] on PATH and replaces the process image. dir, when
// set, becomes the working directory first.
func (l *Launcher) execute(argv, envv []string, dir string) error {
	path, err := l.lookPath(argv[0])
	if err != nil {
		return fmt.Errorf("launch: %s not found: %w", argv[0], err)
	}
	if dir != "" {
		if err := l.chdir(dir); err != nil {
			colors.StructuredWarn("launch", "exec", "chdir-failed", err, dir, nil)
		}
	}
	colors.StructuredInfo("launch", "exec", "spawning", nil, path,
		map[string]interface{}{"args": len(argv) - 1})
	if err := l.exec(path, argv, envv); err != nil {
		return fmt.Errorf("launch: exec %s: %w", path, err)
	}
	return nil
}

// activeWorkspace picks the workspace the user is on: the focused one when
// present, else the first active one.
func activeWorkspace(workspaces []compositor.Workspace) (uint64, bool) {
	for _, ws := range workspaces {
		if ws.IsFocused {
			return ws.ID, true
		}
	}
	for _, ws := range workspaces {
		if ws.IsActive {
			return ws.ID, true
		}
	}
	return 0, false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
