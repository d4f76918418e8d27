package main

import (
	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
)

type inspectClient interface {
	Inspect() error
}

// NewInspectCmd creates the inspect command with explicit dependencies.
func NewInspectCmd(client inspectClient) *cobra.Command {
	if client == nil {
		panic("NewInspectCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "inspect",
		Short: "Browse the window topology interactively",
		Long: `Browse the window topology interactively.

USAGE:
    nirinav inspect

DESCRIPTION:
    Opens a full-screen view of outputs, workspaces and windows as niri
    reports them. The focused window is marked. Selecting a window row
    and pressing enter focuses it; 'r' refreshes the topology; 'q' quits.

EXAMPLES:
    nirinav inspect`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return client.Inspect()
		},
	}
}

var inspectCmd = NewInspectCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(inspectCmd)
}
