package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
	"github.com/nirinav/nirinav/internal/doctor"
)

type doctorClient interface {
	Diagnose(ctx context.Context) []doctor.Check
}

// NewDoctorCmd creates the doctor command with explicit dependencies.
func NewDoctorCmd(client doctorClient) *cobra.Command {
	if client == nil {
		panic("NewDoctorCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "doctor",
		Short: "Check which navigation layers are reachable",
		Long: `Check which navigation layers are reachable.

USAGE:
    nirinav doctor

DESCRIPTION:
    Probes every layer from the focused window and prints one row per
    layer. 'ok' means the layer responded, 'absent' means the layer is
    simply not part of the focused window's stack (normal), and
    'unreachable' means it should be there but did not answer (a fault:
    check the socket, or whether remote control is enabled).

    Exits non-zero when the compositor itself is unreachable, since
    nothing works without it.

EXAMPLES:
    nirinav doctor`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			checks := client.Diagnose(cobraCmd.Context())
			fmt.Fprint(cobraCmd.OutOrStdout(), doctor.Render(checks))
			if !doctor.Healthy(checks) {
				return fmt.Errorf("doctor: compositor unreachable")
			}
			return nil
		},
	}
}

var doctorCmd = NewDoctorCmd(appClient)

func init() {
	cmd.RootCmd.AddCommand(doctorCmd)
}
