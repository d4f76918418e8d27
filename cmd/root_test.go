package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRootCmdMetadata(t *testing.T) {
	assert.Equal(t, "nirinav", RootCmd.Use)
	assert.True(t, RootCmd.SilenceErrors)
	assert.True(t, RootCmd.SilenceUsage)
	assert.NotEmpty(t, RootCmd.Version)
}

func TestExecuteRunsSubcommandWithLifecycle(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	ran := false
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			return nil
		},
	}
	RootCmd.AddCommand(probe)
	defer RootCmd.RemoveCommand(probe)

	RootCmd.SetArgs([]string{"probe"})
	defer RootCmd.SetArgs(nil)

	err := Execute()

	assert.NoError(t, err)
	assert.True(t, ran)
}

func TestExecutePropagatesCommandError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			return assert.AnError
		},
	}
	RootCmd.AddCommand(probe)
	defer RootCmd.RemoveCommand(probe)

	RootCmd.SetArgs([]string{"probe"})
	defer RootCmd.SetArgs(nil)

	err := Execute()

	assert.ErrorIs(t, err, assert.AnError)
}
