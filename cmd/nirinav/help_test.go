package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
)

func TestPrintHelpListsCommandsInOrder(t *testing.T) {
	output := &bytes.Buffer{}
	printHelp(cmd.RootCmd, output)

	rendered := output.String()
	if !strings.Contains(rendered, "nirinav v") {
		t.Fatalf("expected version header, got %q", rendered)
	}
	if !strings.Contains(rendered, "USAGE:") {
		t.Fatalf("expected USAGE section, got %q", rendered)
	}
	if !strings.Contains(rendered, "COMMANDS:") {
		t.Fatalf("expected COMMANDS section, got %q", rendered)
	}

	// Escalation commands come before the tooling commands.
	shorts := []string{
		"Move focus one step in a direction",
		"Close the innermost unit behind the focused window",
		"Open a terminal or editor seeded from the focused window",
		"Print the environment a launch would inherit",
		"Check which navigation layers are reachable",
		"Browse the window topology interactively",
		"Show version information",
	}
	last := -1
	for _, short := range shorts {
		idx := strings.Index(rendered, short)
		if idx == -1 {
			t.Fatalf("expected help to list %q, got %q", short, rendered)
		}
		if idx < last {
			t.Fatalf("expected %q to appear after the previous command", short)
		}
		last = idx
	}
}

func TestRootHelpFuncPrintsOverview(t *testing.T) {
	origWriter := helpOutputWriter
	defer func() { helpOutputWriter = origWriter }()

	output := &bytes.Buffer{}
	helpOutputWriter = output

	cmd.RootCmd.HelpFunc()(cmd.RootCmd, nil)

	if !strings.Contains(output.String(), "COMMANDS:") {
		t.Fatalf("expected overview for root help, got %q", output.String())
	}
}

func TestSubcommandHelpFuncPrintsLong(t *testing.T) {
	output := &bytes.Buffer{}
	switchCmd.SetOut(output)
	defer switchCmd.SetOut(nil)

	cmd.RootCmd.HelpFunc()(switchCmd, nil)

	if !strings.Contains(output.String(), "nirinav switch <left|right|up|down>") {
		t.Fatalf("expected switch usage text, got %q", output.String())
	}
	if strings.Contains(output.String(), "COMMANDS:") {
		t.Fatalf("expected no overview for subcommand help, got %q", output.String())
	}
}

func TestHelpCmdShowsNamedCommand(t *testing.T) {
	root := &cobra.Command{Use: "nirinav"}
	probe := &cobra.Command{
		Use:   "probe",
		Short: "Probe things",
		Long:  "Probe things in detail.",
		RunE:  func(c *cobra.Command, args []string) error { return nil },
	}
	root.AddCommand(probe)
	helpCommand := NewHelpCmd()
	root.AddCommand(helpCommand)

	output := &bytes.Buffer{}
	root.SetOut(output)

	err := helpCommand.RunE(helpCommand, []string{"probe"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output.String(), "Probe things in detail.") {
		t.Fatalf("expected probe help, got %q", output.String())
	}
}

func TestHelpCmdFallsBackToOverviewForUnknownCommand(t *testing.T) {
	origWriter := helpOutputWriter
	defer func() { helpOutputWriter = origWriter }()

	output := &bytes.Buffer{}
	helpOutputWriter = output

	root := &cobra.Command{Use: "nirinav"}
	probe := &cobra.Command{
		Use:   "probe",
		Short: "Probe things",
		RunE:  func(c *cobra.Command, args []string) error { return nil },
	}
	root.AddCommand(probe)
	helpCommand := NewHelpCmd()
	root.AddCommand(helpCommand)

	err := helpCommand.RunE(helpCommand, []string{"nosuch"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output.String(), "USAGE:") {
		t.Fatalf("expected overview fallback, got %q", output.String())
	}
}
