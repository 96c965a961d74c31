package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/reviewdeck/internal/domain/model"
)

// Styles degrade to plain text automatically when stdout is not a terminal.
var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	criticalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	majorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	trivialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resolvedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func styleForSeverity(severity model.Severity) lipgloss.Style {
	switch severity {
	case model.SeverityCritical:
		return criticalStyle
	case model.SeverityMajor:
		return majorStyle
	default:
		return trivialStyle
	}
}

// severityCount renders a count in its severity color.
func severityCount(severity model.Severity, n int) string {
	return styleForSeverity(severity).Render(strconv.Itoa(n))
}
