// Package inspect is the interactive topology viewer: outputs, workspaces
// and windows as niri sees them, with focus-by-selection.
package inspect

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/compositor"
	"github.com/nirinav/nirinav/internal/nav"
)

// Compositor is the slice of the compositor client the inspector needs.
type Compositor interface {
	Windows(ctx context.Context) ([]compositor.Window, error)
	Workspaces(ctx context.Context) ([]compositor.Workspace, error)
	Outputs(ctx context.Context) (map[string]compositor.Output, error)
	FocusWindow(ctx context.Context, id nav.WindowID) error
}

// ProgramRunner runs a bubbletea program. The indirection keeps Run testable
// without a terminal.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner wraps tea.NewProgram with the standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// Run starts the inspector over client. Structured console mirroring is
// disabled while the program owns the terminal.
func Run(client Compositor, runner ProgramRunner) error {
	if client == nil {
		panic("inspect.Run: client dependency cannot be nil")
	}
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}

	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	return runner.Run(NewModel(client))
}
