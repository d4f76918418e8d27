package tmux

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nirinav/nirinav/internal/nav"
)

var testTarget = Target{SocketPath: "/tmp/tmux-1000/default", ServerPID: 12345, SessionID: "3"}

func edgeQuery(format string) []string {
	return []string{"display-message", "-p", "-t", "$3", format}
}

func TestNewProbeNilRunner(t *testing.T) {
	assert.Panics(t, func() {
		NewProbe(nil, testTarget)
	})
}

func TestProbeNavigatePane(t *testing.T) {
	tests := []struct {
		name       string
		direction  nav.Direction
		edgeFormat string
		selectFlag string
	}{
		{"left", nav.Left, "#{pane_at_left}", "-L"},
		{"right", nav.Right, "#{pane_at_right}", "-R"},
		{"up", nav.Up, "#{pane_at_top}", "-U"},
		{"down", nav.Down, "#{pane_at_bottom}", "-D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(MockRunner)
			runner.On("Run", mock.Anything, edgeQuery(tt.edgeFormat)).Return("0", "", nil)
			runner.On("Run", mock.Anything, []string{"select-pane", tt.selectFlag, "-t", "$3"}).Return("", "", nil)

			probe := NewProbe(runner, testTarget)
			decision, err := probe.Navigate(context.Background(), tt.direction)

			assert.NoError(t, err)
			assert.Equal(t, nav.Move, decision)
			runner.AssertExpectations(t)
		})
	}
}

func TestProbeNavigateVerticalEdgeIsBoundary(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, edgeQuery("#{pane_at_top}")).Return("1", "", nil)

	probe := NewProbe(runner, testTarget)
	decision, err := probe.Navigate(context.Background(), nav.Up)

	assert.NoError(t, err)
	assert.Equal(t, nav.Boundary, decision)
	runner.AssertNotCalled(t, "Run", mock.Anything, []string{"select-pane", "-U", "-t", "$3"})
}

func TestProbeNavigateWindowFallback(t *testing.T) {
	listWindows := []string{"list-windows", "-t", "$3", "-F", "#{window_index}\t#{window_active}\t#{window_name}"}

	t.Run("left edge with previous window", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, edgeQuery("#{pane_at_left}")).Return("1", "", nil)
		runner.On("Run", mock.Anything, listWindows).Return("0\t0\teditor\n1\t1\tshell", "", nil)
		runner.On("Run", mock.Anything, []string{"previous-window", "-t", "$3"}).Return("", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.Navigate(context.Background(), nav.Left)

		assert.NoError(t, err)
		assert.Equal(t, nav.Move, decision)
		runner.AssertExpectations(t)
	})

	t.Run("right edge with next window", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, edgeQuery("#{pane_at_right}")).Return("1", "", nil)
		runner.On("Run", mock.Anything, listWindows).Return("0\t1\teditor\n1\t0\tshell", "", nil)
		runner.On("Run", mock.Anything, []string{"next-window", "-t", "$3"}).Return("", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.Navigate(context.Background(), nav.Right)

		assert.NoError(t, err)
		assert.Equal(t, nav.Move, decision)
		runner.AssertExpectations(t)
	})

	t.Run("gap in window indexes still counts as neighbor", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, edgeQuery("#{pane_at_right}")).Return("1", "", nil)
		runner.On("Run", mock.Anything, listWindows).Return("1\t1\teditor\n5\t0\tlogs", "", nil)
		runner.On("Run", mock.Anything, []string{"next-window", "-t", "$3"}).Return("", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.Navigate(context.Background(), nav.Right)

		assert.NoError(t, err)
		assert.Equal(t, nav.Move, decision)
		runner.AssertExpectations(t)
	})

	t.Run("leftmost window is a boundary", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, edgeQuery("#{pane_at_left}")).Return("1", "", nil)
		runner.On("Run", mock.Anything, listWindows).Return("0\t1\teditor\n1\t0\tshell", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.Navigate(context.Background(), nav.Left)

		assert.NoError(t, err)
		assert.Equal(t, nav.Boundary, decision)
		runner.AssertNotCalled(t, "Run", mock.Anything, []string{"previous-window", "-t", "$3"})
	})

	t.Run("single window is a boundary", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, edgeQuery("#{pane_at_right}")).Return("1", "", nil)
		runner.On("Run", mock.Anything, listWindows).Return("0\t1\teditor", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.Navigate(context.Background(), nav.Right)

		assert.NoError(t, err)
		assert.Equal(t, nav.Boundary, decision)
	})
}

func TestProbeNavigateRunnerFailure(t *testing.T) {
	wantErr := errors.New("tmux: " + nav.ErrConnection.Error())
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, edgeQuery("#{pane_at_left}")).Return("", "no server running on /tmp/tmux-1000/default", wantErr)

	probe := NewProbe(runner, testTarget)
	decision, err := probe.Navigate(context.Background(), nav.Left)

	assert.Error(t, err)
	assert.Equal(t, nav.Unavailable, decision)
}

func TestProbeNavigateGarbageEdgeOutput(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, edgeQuery("#{pane_at_left}")).Return("maybe", "", nil)

	probe := NewProbe(runner, testTarget)
	decision, err := probe.Navigate(context.Background(), nav.Left)

	assert.ErrorIs(t, err, nav.ErrProtocol)
	assert.Equal(t, nav.Unavailable, decision)
}

func TestProbeActivePanePID(t *testing.T) {
	t.Run("returns pid", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, edgeQuery("#{pane_pid}")).Return("4242\n", "", nil)

		probe := NewProbe(runner, testTarget)
		pid, err := probe.ActivePanePID(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 4242, pid)
	})

	t.Run("garbage output", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, edgeQuery("#{pane_pid}")).Return("not-a-pid", "", nil)

		probe := NewProbe(runner, testTarget)
		_, err := probe.ActivePanePID(context.Background())

		assert.ErrorIs(t, err, nav.ErrProtocol)
	})
}

func TestProbeClosePane(t *testing.T) {
	paneCount := edgeQuery("#{window_panes}")
	listWindows := []string{"list-windows", "-t", "$3", "-F", "#{window_index}\t#{window_active}\t#{window_name}"}

	t.Run("kills pane when siblings remain", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, paneCount).Return("2", "", nil)
		runner.On("Run", mock.Anything, []string{"kill-pane", "-t", "$3"}).Return("", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.ClosePane(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, nav.Move, decision)
		runner.AssertExpectations(t)
	})

	t.Run("kills window when pane is last in window", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, paneCount).Return("1", "", nil)
		runner.On("Run", mock.Anything, listWindows).Return("0\t1\teditor\n1\t0\tshell", "", nil)
		runner.On("Run", mock.Anything, []string{"kill-window", "-t", "$3"}).Return("", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.ClosePane(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, nav.Move, decision)
		runner.AssertExpectations(t)
	})

	t.Run("last pane of last window is a boundary", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, paneCount).Return("1", "", nil)
		runner.On("Run", mock.Anything, listWindows).Return("0\t1\teditor", "", nil)

		probe := NewProbe(runner, testTarget)
		decision, err := probe.ClosePane(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, nav.Boundary, decision)
		runner.AssertNotCalled(t, "Run", mock.Anything, []string{"kill-pane", "-t", "$3"})
		runner.AssertNotCalled(t, "Run", mock.Anything, []string{"kill-window", "-t", "$3"})
	})

	t.Run("runner failure", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, paneCount).Return("", "", errors.New("boom"))

		probe := NewProbe(runner, testTarget)
		decision, err := probe.ClosePane(context.Background())

		assert.Error(t, err)
		assert.Equal(t, nav.Unavailable, decision)
	})
}

func TestProbeWindows(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, []string{"list-windows", "-t", "$3", "-F", "#{window_index}\t#{window_active}\t#{window_name}"}).
		Return("0\t0\tmain editor\n1\t1\tshell\n\n", "", nil)

	probe := NewProbe(runner, testTarget)
	windows, err := probe.Windows(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []Window{
		{Index: 0, Active: false, Name: "main editor"},
		{Index: 1, Active: true, Name: "shell"},
	}, windows)
}

func TestProbePanes(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Run", mock.Anything, []string{"list-panes", "-s", "-t", "$3", "-F", "#{window_index}\t#{pane_id}\t#{pane_active}\t#{pane_pid}\t#{pane_current_command}"}).
		Return("0\t%0\t0\t100\tnvim\n0\t%1\t1\t101\tzsh\n1\t%2\t0\t102\ttail -f log", "", nil)

	probe := NewProbe(runner, testTarget)
	panes, err := probe.Panes(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []Pane{
		{WindowIndex: 0, ID: "%0", Active: false, PID: 100, Command: "nvim"},
		{WindowIndex: 0, ID: "%1", Active: true, PID: 101, Command: "zsh"},
		{WindowIndex: 1, ID: "%2", Active: false, PID: 102, Command: "tail -f log"},
	}, panes)
}

func TestProbePing(t *testing.T) {
	t.Run("server answers", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, []string{"has-session", "-t", "$3"}).Return("", "", nil)

		probe := NewProbe(runner, testTarget)
		assert.NoError(t, probe.Ping(context.Background()))
		runner.AssertExpectations(t)
	})

	t.Run("server gone", func(t *testing.T) {
		runner := new(MockRunner)
		runner.On("Run", mock.Anything, []string{"has-session", "-t", "$3"}).
			Return("", "no server running on /tmp/tmux-1000/default", errors.New("exit status 1"))

		probe := NewProbe(runner, testTarget)
		assert.Error(t, probe.Ping(context.Background()))
	})
}
