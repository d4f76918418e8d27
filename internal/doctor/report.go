package doctor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	layerWidth  = 12
	statusWidth = 12
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	absentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unreachableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Render formats checks as an aligned report, one layer per row. Cells are
// padded before styling so escape codes never skew the columns.
func Render(checks []Check) string {
	var b strings.Builder

	header := fmt.Sprintf("%-*s  %-*s  %s", layerWidth, "LAYER", statusWidth, "STATUS", "DETAIL")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		strings.Repeat("-", layerWidth),
		strings.Repeat("-", statusWidth),
		strings.Repeat("-", 30),
	))

	for _, check := range checks {
		status := fmt.Sprintf("%-*s", statusWidth, string(check.Status))
		b.WriteString(fmt.Sprintf("%-*s  %s  %s\n",
			layerWidth, string(check.Layer),
			statusStyle(check.Status).Render(status),
			check.Detail,
		))
	}
	return b.String()
}

func statusStyle(status Status) lipgloss.Style {
	switch status {
	case StatusOK:
		return okStyle
	case StatusUnreachable:
		return unreachableStyle
	default:
		return absentStyle
	}
}
