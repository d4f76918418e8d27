package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/cmd"
	"github.com/nirinav/nirinav/internal/colors"
)

// helpOutputWriter is the writer used by PrintHelp. Can be changed for testing.
var helpOutputWriter io.Writer = io.Writer(nil)

// PrintHelp prints the help overview for the given root command.
func PrintHelp(cobraCmd *cobra.Command) {
	if helpOutputWriter == nil {
		helpOutputWriter = cobraCmd.OutOrStdout()
	}
	printHelp(cobraCmd, helpOutputWriter)
}

func printHelp(cobraCmd *cobra.Command, w io.Writer) {
	// Escalation commands first, tooling after
	commandOrder := []string{
		"switch",
		"close",
		"launch",
		"env",
		"doctor",
		"inspect",
		"help",
		"version",
	}

	// Build command descriptions with colors
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cobraCmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		use := found.Use
		short := found.Short
		cmdLines = append(cmdLines, fmt.Sprintf("    %s%-26s%s %s%s%s", colors.Cyan, use, colors.Reset, colors.Green, short, colors.Reset))
	}

	headerColor := colors.Blue
	reset := colors.Reset

	versionStr := cobraCmd.Version
	if versionStr == "" {
		versionStr = "0.0.0"
	}

	helpText := fmt.Sprintf(`%snirinav v%s%s

%sOne keybinding to move focus across niri, kitty, tmux and Neovim.%s

%sUSAGE:%s
    nirinav [COMMAND] [OPTIONS]

%sCOMMANDS:%s
%s

%sOPTIONS:%s
    -h, --help      Show help message
`, headerColor, versionStr, reset, colors.Cyan, reset, headerColor, reset, headerColor, reset, strings.Join(cmdLines, "\n"), headerColor, reset)
	fmt.Fprint(w, helpText)
}

// NewHelpCmd creates the help command with explicit dependencies.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show this help message",
		Long:  `Show this help message.`,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				PrintHelp(cobraCmd.Root())
				return nil
			}
			targetCmd, _, err := cobraCmd.Root().Find(args)
			if err != nil || targetCmd == nil {
				PrintHelp(cobraCmd.Root())
				return nil
			}
			return targetCmd.Help()
		},
	}
}

var helpCmd = NewHelpCmd()

func init() {
	cmd.RootCmd.SetHelpCommand(helpCmd)
	// The overview replaces cobra's template for the root command only;
	// subcommands keep their Long text as the whole help.
	cmd.RootCmd.SetHelpFunc(func(cobraCmd *cobra.Command, args []string) {
		if cobraCmd == cobraCmd.Root() {
			PrintHelp(cobraCmd)
			return
		}
		fmt.Fprintln(cobraCmd.OutOrStdout(), strings.TrimSpace(cobraCmd.Long))
	})
}
