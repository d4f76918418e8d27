package nvim

import (
	"github.com/stretchr/testify/mock"
)

// MockSession is a mock implementation of Session for testing.
// It uses testify/mock to provide flexible behavior configuration and
// method call tracking for assertions.
//
// Example usage:
//
//	session := new(MockSession)
//	session.On("Eval", "winnr()", mock.Anything).Run(func(args mock.Arguments) {
//	    *args.Get(1).(*int) = 2
//	}).Return(nil)
//
//	probe := NewProbe(session)
//	count, err := probe.WindowCount(context.Background())
//	assert.NoError(t, err)
//
//	// Assert that the expression was evaluated
//	session.AssertExpectations(t)
type MockSession struct {
	mock.Mock
}

// Eval returns a mocked error for an expression evaluation. Write the
// result through a Run hook:
//
//	session.On("Eval", "getcwd()", mock.Anything).Run(func(args mock.Arguments) {
//	    *args.Get(1).(*string) = "/home/user/project"
//	}).Return(nil)
func (m *MockSession) Eval(expr string, result interface{}) error {
	args := m.Called(expr, result)
	return args.Error(0)
}

// Input returns a mocked byte count and error for queued keys.
// Configure the return value using:
//
//	session.On("Input", "<Esc><C-w><Left>").Return(12, nil)
func (m *MockSession) Input(keys string) (int, error) {
	args := m.Called(keys)
	return args.Int(0), args.Error(1)
}

// Command returns a mocked error for an ex command.
// Configure the return value using:
//
//	session.On("Command", "close").Return(nil)
func (m *MockSession) Command(cmd string) error {
	args := m.Called(cmd)
	return args.Error(0)
}

// Close returns a mocked error for tearing the session down.
// Configure the return value using:
//
//	session.On("Close").Return(nil)
func (m *MockSession) Close() error {
	args := m.Called()
	return args.Error(0)
}
