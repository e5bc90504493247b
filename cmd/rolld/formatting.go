package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/KirkDiggler/rolld/internal/services/formatting"
)

// Styles for the two extremes
var (
	critStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	critFailStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// colorEnabled reports whether styled output should be used
func colorEnabled(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}

	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if we're being piped or redirected
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// styleLine applies the highlight style for crits and crit fails
func styleLine(highlight formatting.Highlight, line string, colored bool) string {
	if !colored {
		return line
	}

	switch highlight {
	case formatting.HighlightCrit:
		return critStyle.Render(line)
	case formatting.HighlightCritFail:
		return critFailStyle.Render(line)
	default:
		return line
	}
}
