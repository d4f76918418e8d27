package launch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/kitty"
	"github.com/nirinav/nirinav/internal/nav"
)

var testConfig = Config{
	TerminalAppIDs:  []string{"kitty"},
	EditorCommands:  []string{"nvim"},
	TerminalCommand: "kitty",
	EditorCommand:   "neovide",
}

func strPtr(s string) *string { return &s }
func pidPtr(p int32) *int32   { return &p }
func wsPtr(id uint64) *uint64 { return &id }

func kittyWindow() *compositor.Window {
	return &compositor.Window{ID: 7, AppID: strPtr("kitty"), PID: pidPtr(300), WorkspaceID: wsPtr(2), IsFocused: true}
}

func neovideWindow() *compositor.Window {
	return &compositor.Window{ID: 8, AppID: strPtr("neovide"), PID: pidPtr(400), WorkspaceID: wsPtr(2), IsFocused: true}
}

// instanceTree builds a single-window ls tree for one terminal instance.
func instanceTree(cwd string, env map[string]string) []kitty.OSWindow {
	return []kitty.OSWindow{{
		ID:        1,
		IsFocused: true,
		Tabs: []kitty.Tab{{
			ID:        1,
			IsFocused: true,
			Windows:   []kitty.Window{{ID: 1, IsFocused: true, Cwd: cwd, Env: env}},
		}},
	}}
}

// fixture wires a launcher over mocks with exec captured instead of run.
type fixture struct {
	comp *MockCompositor
	term *MockTerminal
	tree *MockProcessTree

	termErr error
	lookErr error

	execArgv0 string
	execArgv  []string
	execEnvv  []string
	execCalls int
	chdirDir  string
}

func newFixture() *fixture {
	return &fixture{
		comp: new(MockCompositor),
		term: new(MockTerminal),
		tree: new(MockProcessTree),
	}
}

func (f *fixture) launcher() *Launcher {
	terminal := func(ctx context.Context, w *compositor.Window) (Terminal, error) {
		if f.termErr != nil {
			return nil, f.termErr
		}
		return f.term, nil
	}
	return New(f.comp, terminal, testConfig,
		WithSnapshot(func() (ProcessTree, error) { return f.tree, nil }),
		WithExec(func(argv0 string, argv, envv []string) error {
			f.execCalls++
			f.execArgv0, f.execArgv, f.execEnvv = argv0, argv, envv
			return nil
		}),
		WithLookPath(func(file string) (string, error) {
			if f.lookErr != nil {
				return "", f.lookErr
			}
			return "/usr/bin/" + file, nil
		}),
		WithChdir(func(dir string) error {
			f.chdirDir = dir
			return nil
		}),
	)
}

func TestNewNilCompositor(t *testing.T) {
	assert.Panics(t, func() {
		New(nil, nil, Config{})
	})
}

func TestHarvestScrubsPerInstanceVars(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return(neovideWindow(), nil)
	f.tree.On("Find", 400, []string{"nvim"}).Return(0, false)
	f.tree.On("Environ", 400).Return(map[string]string{
		"HOME":            "/home/user",
		"PATH":            "/usr/bin",
		"TMUX":            "/tmp/tmux-1000/default,99,3",
		"TMUX_PANE":       "%1",
		"KITTY_WINDOW_ID": "2",
		"KITTY_PID":       "300",
		"NVIM":            "/run/user/1000/nvim.400.0",
		"WINDOWID":        "8",
	}, nil)
	f.tree.On("Cwd", 400).Return("/home/user/project", nil)

	h, err := f.launcher().Harvest(context.Background())

	assert.NoError(t, err)
	assert.False(t, h.FromTerminal)
	assert.Equal(t, "/home/user/project", h.Cwd)
	assert.Equal(t, "/home/user", h.Env["HOME"])
	assert.Equal(t, "/usr/bin", h.Env["PATH"])
	for _, k := range scrubbedVars {
		assert.NotContains(t, h.Env, k)
	}
}

func TestHarvestPrefersEditorProcess(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return(neovideWindow(), nil)
	f.tree.On("Find", 400, []string{"nvim"}).Return(620, true)
	f.tree.On("Environ", 620).Return(map[string]string{"EDITOR": "nvim"}, nil)
	f.tree.On("Cwd", 620).Return("/work", nil)

	h, err := f.launcher().Harvest(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "/work", h.Cwd)
	assert.Equal(t, "nvim", h.Env["EDITOR"])
	f.tree.AssertCalled(t, "Environ", 620)
}

func TestHarvestFromTerminalInstance(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return(kittyWindow(), nil)
	f.term.On("Ls", mock.Anything).Return(instanceTree("/src", map[string]string{
		"FOO":             "bar",
		"KITTY_WINDOW_ID": "3",
	}), nil)

	h, err := f.launcher().Harvest(context.Background())

	assert.NoError(t, err)
	assert.True(t, h.FromTerminal)
	assert.Equal(t, "/src", h.Cwd)
	assert.Equal(t, "bar", h.Env["FOO"])
	assert.NotContains(t, h.Env, "KITTY_WINDOW_ID")
}

func TestHarvestTerminalUnreachableFallsBackToProc(t *testing.T) {
	f := newFixture()
	f.termErr = assert.AnError
	f.comp.On("FocusedWindow", mock.Anything).Return(kittyWindow(), nil)
	f.tree.On("Find", 300, []string{"nvim"}).Return(0, false)
	f.tree.On("Environ", 300).Return(map[string]string{"SHELL": "/bin/zsh"}, nil)
	f.tree.On("Cwd", 300).Return("/tmp", nil)

	h, err := f.launcher().Harvest(context.Background())

	assert.NoError(t, err)
	assert.False(t, h.FromTerminal)
	assert.Equal(t, "/tmp", h.Cwd)
	assert.Equal(t, "/bin/zsh", h.Env["SHELL"])
}

func TestHarvestCompositorFailure(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return((*compositor.Window)(nil), assert.AnError)

	h, err := f.launcher().Harvest(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, h.Env)
	assert.Empty(t, h.Cwd)
}

func TestTerminalReusesMatchingInstance(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return(neovideWindow(), nil)
	f.tree.On("Find", 400, []string{"nvim"}).Return(410, true)
	f.tree.On("Environ", 410).Return(map[string]string{"A": "b"}, nil)
	f.tree.On("Cwd", 410).Return("/proj", nil)
	f.comp.On("Workspaces", mock.Anything).Return([]compositor.Workspace{
		{ID: 1, IsActive: true},
		{ID: 2, IsActive: true, IsFocused: true},
	}, nil)
	f.comp.On("Windows", mock.Anything).Return([]compositor.Window{
		*neovideWindow(),
		{ID: 12, AppID: strPtr("kitty"), PID: pidPtr(920), WorkspaceID: wsPtr(2)},
		{ID: 13, AppID: strPtr("kitty"), PID: pidPtr(930), WorkspaceID: wsPtr(1)},
	}, nil)
	f.term.On("Ls", mock.Anything).Return(instanceTree("/proj", nil), nil)
	f.comp.On("FocusWindow", mock.Anything, nav.WindowID(12)).Return(nil)

	err := f.launcher().Terminal(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, f.execCalls)
	f.comp.AssertCalled(t, "FocusWindow", mock.Anything, nav.WindowID(12))
}

func TestTerminalSpawnsWhenNoInstanceMatches(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return(neovideWindow(), nil)
	f.tree.On("Find", 400, []string{"nvim"}).Return(410, true)
	f.tree.On("Environ", 410).Return(map[string]string{"A": "b"}, nil)
	f.tree.On("Cwd", 410).Return("/proj", nil)
	f.comp.On("Workspaces", mock.Anything).Return([]compositor.Workspace{
		{ID: 2, IsActive: true, IsFocused: true},
	}, nil)
	f.comp.On("Windows", mock.Anything).Return([]compositor.Window{
		{ID: 12, AppID: strPtr("kitty"), PID: pidPtr(920), WorkspaceID: wsPtr(2)},
	}, nil)
	f.term.On("Ls", mock.Anything).Return(instanceTree("/elsewhere", nil), nil)

	err := f.launcher().Terminal(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, f.execCalls)
	assert.Equal(t, "/usr/bin/kitty", f.execArgv0)
	assert.Equal(t, []string{"kitty", "-o", "env=A=b", "-d", "/proj"}, f.execArgv)
	f.comp.AssertNotCalled(t, "FocusWindow", mock.Anything, mock.Anything)
}

func TestTerminalFromTerminalAlwaysSpawns(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return(kittyWindow(), nil)
	f.term.On("Ls", mock.Anything).Return(instanceTree("/src", map[string]string{"FOO": "bar"}), nil)

	err := f.launcher().Terminal(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, f.execCalls)
	assert.Equal(t, []string{"kitty", "-o", "env=FOO=bar", "-d", "/src"}, f.execArgv)
	f.comp.AssertNotCalled(t, "Workspaces", mock.Anything)
}

func TestEditorSpawnsWithHarvestedEnv(t *testing.T) {
	f := newFixture()
	f.comp.On("FocusedWindow", mock.Anything).Return(kittyWindow(), nil)
	f.term.On("Ls", mock.Anything).Return(instanceTree("/src", map[string]string{"FOO": "bar"}), nil)

	err := f.launcher().Editor(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, f.execCalls)
	assert.Equal(t, "/usr/bin/neovide", f.execArgv0)
	assert.Equal(t, []string{"neovide"}, f.execArgv)
	assert.Equal(t, "/src", f.chdirDir)
	assert.Contains(t, f.execEnvv, "FOO=bar")
}

func TestEditorCommandNotFound(t *testing.T) {
	f := newFixture()
	f.lookErr = assert.AnError
	f.comp.On("FocusedWindow", mock.Anything).Return(kittyWindow(), nil)
	f.term.On("Ls", mock.Anything).Return(instanceTree("/src", nil), nil)

	err := f.launcher().Editor(context.Background())

	assert.Error(t, err)
	assert.Zero(t, f.execCalls)
}

func TestHarvestSorted(t *testing.T) {
	h := &Harvest{Env: map[string]string{"ZED": "1", "ALPHA": "2", "MID": "3"}}
	assert.Equal(t, []string{"ALPHA=2", "MID=3", "ZED=1"}, h.Sorted())
}
