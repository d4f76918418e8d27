package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/kitty"
	"github.com/nirinav/nirinav/internal/tmux"
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

// Version returns a mocked compositor version string.
// Configure the return value using:
//
//	comp.On("Version", mock.Anything).Return("25.05", nil)
func (m *MockCompositor) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
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

// MockMultiplexer is a mock implementation of Multiplexer for testing.
type MockMultiplexer struct {
	mock.Mock
}

// Ping returns a mocked error for a multiplexer liveness check.
// Configure the return value using:
//
//	mux.On("Ping", mock.Anything).Return(nil)
func (m *MockMultiplexer) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Windows returns a mocked window list for the multiplexer session.
// Configure the return value using:
//
//	mux.On("Windows", mock.Anything).Return([]tmux.Window{{Index: 0}}, nil)
func (m *MockMultiplexer) Windows(ctx context.Context) ([]tmux.Window, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tmux.Window), args.Error(1)
}

// ActivePanePID returns a mocked pid of the active pane process.
// Configure the return value using:
//
//	mux.On("ActivePanePID", mock.Anything).Return(4242, nil)
func (m *MockMultiplexer) ActivePanePID(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEditor is a mock implementation of Editor for testing.
type MockEditor struct {
	mock.Mock
}

// Pid returns a mocked pid for an editor round trip.
// Configure the return value using:
//
//	editor.On("Pid", mock.Anything).Return(620, nil)
func (m *MockEditor) Pid(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Close returns a mocked error for releasing the editor session.
// Configure the return value using:
//
//	editor.On("Close").Return(nil)
func (m *MockEditor) Close() error {
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
//	tree.On("Find", 300, []string{"tmux", "tmux: client"}).Return(310, true)
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
