package main

import (
	"os"

	"github.com/nirinav/nirinav/cmd"
	"github.com/nirinav/nirinav/internal/colors"
	"github.com/nirinav/nirinav/internal/errors"
)

// isTUICommand reports whether args invoke the full-screen inspect view.
// Structured startup logs would corrupt the alternate screen, so run
// skips them for that command.
func isTUICommand(args []string) bool {
	for _, arg := range args {
		if len(arg) > 0 && arg[0] == '-' {
			continue
		}
		return arg == "inspect"
	}
	return false
}

func run(args []string, execute func() error) int {
	tui := isTUICommand(args)

	if !tui {
		colors.StructuredInfo("startup", "main", "started", nil, "", nil)
	}

	if err := execute(); err != nil {
		if !tui {
			colors.StructuredError("startup", "main", "failed", err, "", nil)
		}
		errors.NewDefaultCLIHandler().Error(err.Error())
		return errors.ExitCode(err)
	}

	if !tui {
		colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], func() error {
		return cmd.Execute()
	}))
}
