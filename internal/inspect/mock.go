package inspect

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/nav"
)

// MockCompositor is a mock implementation of Compositor for testing.
type MockCompositor struct {
	mock.Mock
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
//	comp.On("Workspaces", mock.Anything).Return([]compositor.Workspace{{ID: 2}}, nil)
func (m *MockCompositor) Workspaces(ctx context.Context) ([]compositor.Workspace, error) {
	args := m.Called(ctx)
	return args.Get(0).([]compositor.Workspace), args.Error(1)
}

// Outputs returns mocked outputs keyed by connector name.
// Configure the return value using:
//
//	comp.On("Outputs", mock.Anything).Return(map[string]compositor.Output{"eDP-1": {}}, nil)
func (m *MockCompositor) Outputs(ctx context.Context) (map[string]compositor.Output, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]compositor.Output), args.Error(1)
}

// FocusWindow returns a mocked error for focusing a window by id.
// Configure the return value using:
//
//	comp.On("FocusWindow", mock.Anything, nav.WindowID(7)).Return(nil)
func (m *MockCompositor) FocusWindow(ctx context.Context, id nav.WindowID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProgramRunner is a mock implementation of ProgramRunner for testing.
type MockProgramRunner struct {
	mock.Mock
}

// Run returns a mocked error for running a program.
// Configure the return value using:
//
//	runner.On("Run", mock.Anything).Return(nil)
func (m *MockProgramRunner) Run(model tea.Model) error {
	args := m.Called(model)
	return args.Error(0)
}
