// Package cmd wires the CLI surface. Subcommands live next to the binary in
// cmd/nirinav and register themselves against RootCmd from their init
// functions.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/config"
	"github.com/nirinav/nirinav/internal/logging"
	"github.com/nirinav/nirinav/internal/version"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "nirinav",
	Short: "One keybinding to move focus across niri, kitty, tmux and Neovim.",
	Long:  `One keybinding to move focus across niri, kitty, tmux and Neovim.`,
	// Subcommands render their own diagnostics through the error handler
	// in main; cobra's default reporting would double-print them.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		if err := logging.InitGlobal(); err != nil {
			colors.Warning(fmt.Sprintf("Failed to initialize logging: %v", err))
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug(fmt.Sprintf("Failed to shut down logging: %v", err))
		}
	},
}

// Execute runs the root command. This is called by main.main() and only
// needs to happen once.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Set version for use in help output
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
}
