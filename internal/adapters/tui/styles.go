package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/uibind/uibind/internal/ui/style"
)

var (
	// Pane styles.
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Slate).
			MarginRight(1).
			PaddingRight(1)

	logStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	// Stage status styles.
	stagePendingStyle = lipgloss.NewStyle().
				Foreground(style.Slate)

	stageRunningStyle = lipgloss.NewStyle().
				Foreground(style.Cobalt).
				Bold(true)

	stageDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stageErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Cobalt).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Cobalt).
			Foreground(style.White)
)
