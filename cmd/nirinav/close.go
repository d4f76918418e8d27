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

type closeClient interface {
	Close(ctx context.Context, window nav.WindowID) (*resolver.Resolution, error)
}

// NewCloseCmd creates the close command with explicit dependencies.
func NewCloseCmd(client closeClient) *cobra.Command {
	if client == nil {
		panic("NewCloseCmd: client dependency cannot be nil")
	}

	var windowFlag uint64

	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Close the innermost unit behind the focused window",
		Long: `Close the innermost unit behind the focused window.

USAGE:
    nirinav close

DESCRIPTION:
    Closes one thing, chosen the same way switch chooses: an extra Neovim
    split first, then a tmux pane, then a kitty window. When no inner
    layer has anything left to close, the compositor window itself is
    closed.

OPTIONS:
    --window <id>    Resolve against this compositor window id instead of
                     the focused window

EXAMPLES:
    # Bind in niri: Mod+Q spawns this instead of close-window
    nirinav close`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			resolution, err := client.Close(cobraCmd.Context(), nav.WindowID(windowFlag))
			if err != nil {
				return err
			}
			colors.Debug(fmt.Sprintf("close resolved by %s (%s)", resolution.Layer, resolution))
			return nil
		},
	}

	closeCmd.Flags().Uint64Var(&windowFlag, "window", 0, "compositor window id to resolve against")
	return closeCmd
}

var closeCmd = NewCloseCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(closeCmd)
}
