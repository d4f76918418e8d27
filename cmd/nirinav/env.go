package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
	"github.com/nirinav/nirinav/internal/launch"
)

type envClient interface {
	HarvestEnv(ctx context.Context) (*launch.Harvest, error)
}

// NewEnvCmd creates the env command with explicit dependencies.
func NewEnvCmd(client envClient) *cobra.Command {
	if client == nil {
		panic("NewEnvCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "env",
		Short: "Print the environment a launch would inherit",
		Long: `Print the environment a launch would inherit.

USAGE:
    nirinav env

DESCRIPTION:
    Shows the variables and working directory that 'launch terminal' or
    'launch editor' would seed a new window with, harvested from the
    focused window. One NAME="VALUE" line per variable, sorted by name,
    with the working directory last. Useful to check what a launch will
    see before binding it.

EXAMPLES:
    nirinav env`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			harvest, err := client.HarvestEnv(cobraCmd.Context())
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(harvest.Env))
			for k := range harvest.Env {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			out := cobraCmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintf(out, "%s=%q\n", k, harvest.Env[k])
			}
			if harvest.Cwd != "" {
				fmt.Fprintf(out, "cwd=%q\n", harvest.Cwd)
			}
			return nil
		},
	}
}

var envCmd = NewEnvCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(envCmd)
}
