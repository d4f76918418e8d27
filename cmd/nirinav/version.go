package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
)

type versionClient interface {
	Version() string
}

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of nirinav.`,
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			fmt.Fprintf(cobraCmd.OutOrStdout(), "nirinav version %s\n", client.Version())
			return nil
		},
	}
}

// versionCmd represents the version command
var versionCmd = NewVersionCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
