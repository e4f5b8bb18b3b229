// Package tui renders pipeline progress as an interactive terminal
// session: a stage list on the left, the selected stage's output on
// the right, driven by renderer events.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// NewModel creates a new TUI model with default settings.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := NewOutput(w)
	lipgloss.SetColorProfile(out.Profile)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = stageRunningStyle

	return Model{
		Stages:     make([]*StageNode, 0),
		StageMap:   make(map[string]*StageNode),
		SpanMap:    make(map[string]*StageNode),
		Spinner:    sp,
		AutoScroll: true,
		FollowMode: true,
	}
}
