package resolver

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/nav"
)

// MockCompositor is a mock implementation of Compositor for testing.
// It uses testify/mock to provide flexible behavior configuration and
// method call tracking for assertions.
//
// Example usage:
//
//	comp := new(MockCompositor)
//	comp.On("FocusedWindow", mock.Anything).Return(&compositor.Window{ID: 7}, nil)
//	comp.On("MoveFocus", mock.Anything, nav.Left).Return(nil)
//
//	// Assert the action was dispatched exactly once
//	comp.AssertNumberOfCalls(t, "MoveFocus", 1)
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

// MoveFocus returns a mocked error for a focus dispatch.
// Configure the return value using:
//
//	comp.On("MoveFocus", mock.Anything, nav.Left).Return(nil)
func (m *MockCompositor) MoveFocus(ctx context.Context, direction nav.Direction) error {
	args := m.Called(ctx, direction)
	return args.Error(0)
}

// CloseWindow returns a mocked error for a close dispatch.
// Configure the return value using:
//
//	comp.On("CloseWindow", mock.Anything).Return(nil)
func (m *MockCompositor) CloseWindow(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTerminalProbe is a mock implementation of TerminalProbe for testing.
type MockTerminalProbe struct {
	mock.Mock
}

// Navigate returns a mocked decision for a terminal navigation step.
// Configure the return value using:
//
//	term.On("Navigate", mock.Anything, nav.Left).Return(nav.Move, nil)
func (m *MockTerminalProbe) Navigate(ctx context.Context, direction nav.Direction) (nav.Decision, error) {
	args := m.Called(ctx, direction)
	return args.Get(0).(nav.Decision), args.Error(1)
}

// CloseWindow returns a mocked decision for a terminal close step.
// Configure the return value using:
//
//	term.On("CloseWindow", mock.Anything).Return(nav.Boundary, nil)
func (m *MockTerminalProbe) CloseWindow(ctx context.Context) (nav.Decision, error) {
	args := m.Called(ctx)
	return args.Get(0).(nav.Decision), args.Error(1)
}

// MockMultiplexerProbe is a mock implementation of MultiplexerProbe for
// testing.
type MockMultiplexerProbe struct {
	mock.Mock
}

// Navigate returns a mocked decision for a multiplexer navigation step.
// Configure the return value using:
//
//	mux.On("Navigate", mock.Anything, nav.Left).Return(nav.Boundary, nil)
func (m *MockMultiplexerProbe) Navigate(ctx context.Context, direction nav.Direction) (nav.Decision, error) {
	args := m.Called(ctx, direction)
	return args.Get(0).(nav.Decision), args.Error(1)
}

// ClosePane returns a mocked decision for a multiplexer close step.
// Configure the return value using:
//
//	mux.On("ClosePane", mock.Anything).Return(nav.Move, nil)
func (m *MockMultiplexerProbe) ClosePane(ctx context.Context) (nav.Decision, error) {
	args := m.Called(ctx)
	return args.Get(0).(nav.Decision), args.Error(1)
}

// ActivePanePID returns a mocked pid of the active pane process.
// Configure the return value using:
//
//	mux.On("ActivePanePID", mock.Anything).Return(4242, nil)
func (m *MockMultiplexerProbe) ActivePanePID(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEditorProbe is a mock implementation of EditorProbe for testing.
type MockEditorProbe struct {
	mock.Mock
}

// Navigate returns a mocked decision for an editor navigation step.
// Configure the return value using:
//
//	editor.On("Navigate", mock.Anything, nav.Left).Return(nav.Move, nil)
func (m *MockEditorProbe) Navigate(ctx context.Context, direction nav.Direction) (nav.Decision, error) {
	args := m.Called(ctx, direction)
	return args.Get(0).(nav.Decision), args.Error(1)
}

// CloseSplit returns a mocked decision for an editor close step.
// Configure the return value using:
//
//	editor.On("CloseSplit", mock.Anything).Return(nav.Boundary, nil)
func (m *MockEditorProbe) CloseSplit(ctx context.Context) (nav.Decision, error) {
	args := m.Called(ctx)
	return args.Get(0).(nav.Decision), args.Error(1)
}

// Close returns a mocked error for releasing the editor session.
// Configure the return value using:
//
//	editor.On("Close").Return(nil)
func (m *MockEditorProbe) Close() error {
	args := m.Called()
	return args.Error(0)
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
//	tree.On("Environ", 310).Return(map[string]string{"TMUX": "/tmp/tmux-1000/default,99,3"}, nil)
func (m *MockProcessTree) Environ(pid int) (map[string]string, error) {
	args := m.Called(pid)
	return args.Get(0).(map[string]string), args.Error(1)
}
