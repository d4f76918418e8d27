package launch

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/kitty"
	"github.com/nirinav/nirinav/internal/nav"
)

// MockCompositor is a mock implementation of Compositor for testing.
type MockCompositor struct {
	mock.Mock
}

// FocusedWindow returns a mocked focused window.
// Configure the return value using:
//
//	comp.On("FocusedWindow", mock.Anything).Return(&compositor.Window{ID: 7}, nil)
func (m *MockCompositor) FocusedWindow(ctx context.Context) (*compositor.Window, error) {
	args := m.Called(ctx)
	return args.Get(0).(*compositor.Window), args.Error(1)
}

// Windows returns a mocked window list.
// Configure the return value using:
//
//	comp.On("Windows", mock.Anything).Return([]compositor.Window{{ID: 7}}, nil)
func (m *MockCompositor) Windows(ctx context.Context) ([]compositor.Window, error) {
	args := m.Called(ctx)
	return args.Get(0).([]compositor.Window), args.Error(1)
}

// Workspaces returns a mocked workspace list.
// Configure the return value using:
//
//	comp.On("Workspaces", mock.Anything).Return([]compositor.Workspace{{ID: 2, IsFocused: true}}, nil)
func (m *MockCompositor) Workspaces(ctx context.Context) ([]compositor.Workspace, error) {
	args := m.Called(ctx)
	return args.Get(0).([]compositor.Workspace), args.Error(1)
}

// FocusWindow returns a mocked error for focusing a window by id.
// Configure the return value using:
//
//	comp.On("FocusWindow", mock.Anything, nav.WindowID(7)).Return(nil)
func (m *MockCompositor) FocusWindow(ctx context.Context, id nav.WindowID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTerminal is a mock implementation of Terminal for testing.
type MockTerminal struct {
	mock.Mock
}

// Ls returns a mocked window tree for one terminal instance.
// Configure the return value using:
//
//	term.On("Ls", mock.Anything).Return([]kitty.OSWindow{...}, nil)
func (m *MockTerminal) Ls(ctx context.Context) ([]kitty.OSWindow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]kitty.OSWindow), args.Error(1)
}

// MockProcessTree is a mock implementation of ProcessTree for testing.
type MockProcessTree struct {
	mock.Mock
}

// Find returns a mocked pid for a process lookup.
// Configure the return value using:
//
//	tree.On("Find", 300, []string{"nvim"}).Return(4242, true)
func (m *MockProcessTree) Find(root int, names ...string) (int, bool) {
	args := m.Called(root, names)
	return args.Int(0), args.Bool(1)
}

// Environ returns a mocked environment for a pid.
// Configure the return value using:
//
//	tree.On("Environ", 310).Return(map[string]string{"EDITOR": "nvim"}, nil)
func (m *MockProcessTree) Environ(pid int) (map[string]string, error) {
	args := m.Called(pid)
	return args.Get(0).(map[string]string), args.Error(1)
}

// Cwd returns a mocked working directory for a pid.
// Configure the return value using:
//
//	tree.On("Cwd", 310).Return("/home/user/project", nil)
func (m *MockProcessTree) Cwd(pid int) (string, error) {
	args := m.Called(pid)
	return args.String(0), args.Error(1)
}
