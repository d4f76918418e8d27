package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/nav"
	"github.com/nirinav/nirinav/internal/resolver"
)

type switchClient interface {
	Switch(ctx context.Context, req nav.Request) (*resolver.Resolution, error)
}

// NewSwitchCmd creates the switch command with explicit dependencies.
func NewSwitchCmd(client switchClient) *cobra.Command {
	if client == nil {
		panic("NewSwitchCmd: client dependency cannot be nil")
	}

	var windowFlag uint64

	switchCmd := &cobra.Command{
		Use:   "switch <direction>",
		Short: "Move focus one step in a direction",
		Long: `Move focus one step in a direction.

USAGE:
    nirinav switch <left|right|up|down>

DESCRIPTION:
    Decides which layer the keystroke belongs to and moves focus there: a
    Neovim split while the cursor can still travel, a tmux pane next, then
    a kitty window or tab, and finally the niri column or window. Exactly
    one layer acts per invocation; a layer at its boundary hands the
    request outward until the compositor takes it.

ARGUMENTS:
    <direction>    left, right, up or down

OPTIONS:
    --window <id>    Resolve against this compositor window id instead of
                     the focused window

EXAMPLES:
    # Bind in niri: Mod+H spawns this instead of focus-column-left
    nirinav switch left

    # Resolve against a specific compositor window
    nirinav switch right --window 42`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("switch: requires a direction (left, right, up or down)")
			}
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			direction, err := nav.ParseDirection(args[0])
			if err != nil {
				return err
			}
			resolution, err := client.Switch(cobraCmd.Context(), nav.Request{
				Direction: direction,
				Window:    nav.WindowID(windowFlag),
			})
			if err != nil {
				return err
			}
			colors.Debug(fmt.Sprintf("switch %s resolved by %s (%s)", direction, resolution.Layer, resolution))
			return nil
		},
	}

	switchCmd.Flags().Uint64Var(&windowFlag, "window", 0, "compositor window id to resolve against")
	return switchCmd
}

var switchCmd = NewSwitchCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(switchCmd)
}
