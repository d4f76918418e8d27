package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
)

type launchClient interface {
	LaunchTerminal(ctx context.Context) error
	LaunchEditor(ctx context.Context) error
}

// NewLaunchCmd creates the launch command with explicit dependencies.
func NewLaunchCmd(client launchClient) *cobra.Command {
	if client == nil {
		panic("NewLaunchCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "launch <terminal|editor>",
		Short: "Open a terminal or editor seeded from the focused window",
		Long: `Open a terminal or editor seeded from the focused window.

USAGE:
    nirinav launch <terminal|editor>

DESCRIPTION:
    Captures the environment and working directory of whatever the user is
    looking at and starts the target there, so a new shell or editor lands
    in the same project with the same variables. Per-instance variables
    (KITTY_WINDOW_ID, NVIM, TMUX and friends) are dropped.

    Launching a terminal first looks for an existing terminal on the
    active workspace already sitting in that directory and focuses it
    instead of spawning a duplicate. The spawn replaces this process
    image, so the new window inherits the niri environment directly.

ARGUMENTS:
    <target>    terminal or editor

EXAMPLES:
    # Bind in niri: Mod+Return opens a terminal where you are
    nirinav launch terminal

    # Open the editor in the focused project
    nirinav launch editor`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("launch: requires a target (terminal or editor)")
			}
			if args[0] != "terminal" && args[0] != "editor" {
				return fmt.Errorf("launch: unknown target %q (expected terminal or editor)", args[0])
			}
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if args[0] == "terminal" {
				return client.LaunchTerminal(cobraCmd.Context())
			}
			return client.LaunchEditor(cobraCmd.Context())
		},
	}
}

var launchCmd = NewLaunchCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(launchCmd)
}
