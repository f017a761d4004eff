package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	summaryHeaderStyle = lipgloss.NewStyle().Bold(true)
	summaryBulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	summaryPathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

// RenderSummary renders the list of artifacts produced by a successful run.
func RenderSummary(outputs []string) string {
	var b strings.Builder

	noun := "archives"
	if len(outputs) == 1 {
		noun = "archive"
	}
	b.WriteString(summaryHeaderStyle.Render(fmt.Sprintf("Created %d %s", len(outputs), noun)))

	for _, output := range outputs {
		b.WriteString("\n")
		b.WriteString(summaryBulletStyle.Render("  - "))
		b.WriteString(summaryPathStyle.Render(output))
	}

	return b.String()
}
