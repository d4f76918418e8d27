package tmux

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of Runner for testing.
// It uses testify/mock to provide flexible behavior configuration and
// method call tracking for assertions.
//
// Example usage:
//
//	runner := new(MockRunner)
//	runner.On("Run", mock.Anything, []string{"has-session", "-t", "$3"}).
//	    Return("", "", nil)
//
//	probe := NewProbe(runner, Target{SocketPath: "/tmp/tmux-1000/default", SessionID: "3"})
//	err := probe.Ping(context.Background())
//	assert.NoError(t, err)
//
//	// Assert that the command was executed
//	runner.AssertExpectations(t)
type MockRunner struct {
	mock.Mock
}

// Run returns mocked stdout, stderr, and error for a tmux command.
// Configure the return value using:
//
//	runner.On("Run", mock.Anything, []string{"display-message", "-p", "-t", "$3", "#{pane_pid}"}).
//	    Return("4242", "", nil)
func (m *MockRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	callArgs := m.Called(ctx, args)
	return callArgs.String(0), callArgs.String(1), callArgs.Error(2)
}
