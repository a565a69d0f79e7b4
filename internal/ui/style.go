package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/amonks/tasklist/todo"
)

var ansiEnabled = func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var statusStyles = map[todo.Status]lipgloss.Style{
	todo.StatusNotStarted: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	todo.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	todo.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
}

// StatusStyle returns the style used for status text in the CLI and TUI.
func StatusStyle(status todo.Status) lipgloss.Style {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// StatusBadge returns the status label, coloured when stdout is a terminal.
func StatusBadge(status todo.Status) string {
	label := status.Label()
	if !ansiEnabled() {
		return label
	}
	return StatusStyle(status).Render(label)
}

// StatusMarker returns a one-character checkbox for the status.
func StatusMarker(status todo.Status) string {
	switch status {
	case todo.StatusCompleted:
		return "[x]"
	case todo.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}
