package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uibind/uibind/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.stageList(),
		m.logPane(),
	)
}

func (m *Model) stageList() string {
	var s strings.Builder

	title := "STAGES"
	if m.Target != "" {
		title = "STAGES " + m.Target
	}
	s.WriteString(titleStyle.Render(title) + "\n\n")

	end := min(m.ListOffset+m.ListHeight, len(m.Stages))
	start := min(m.ListOffset, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderStageRow(i, m.Stages[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderStageRow(index int, stage *StageNode) string {
	icon := m.stageIcon(stage)
	rowStyle := m.stageStyle(stage)

	var cursor string
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if stage.Status != StatusDone && stage.Status != StatusError {
			rowStyle = selectedStyle
		}
	} else {
		cursor = "  "
	}

	content := fmt.Sprintf("%s %s", icon, stage.Name)
	return cursor + rowStyle.Render(content)
}

func (m *Model) stageIcon(stage *StageNode) string {
	switch stage.Status {
	case StatusRunning:
		return m.Spinner.View()
	case StatusDone:
		return style.Check
	case StatusError:
		return style.Cross
	default: // Pending
		return style.Circle
	}
}

func (m *Model) stageStyle(stage *StageNode) lipgloss.Style {
	switch stage.Status {
	case StatusRunning:
		return stageRunningStyle
	case StatusDone:
		return stageDoneStyle
	case StatusError:
		return stageErrorStyle
	default: // Pending
		return stagePendingStyle
	}
}

func (m *Model) logPane() string {
	header := titleStyle.Render("LOGS (Waiting...)")
	var content string

	if m.ActiveStage != "" {
		mode := " (Manual)"
		if m.FollowMode {
			mode = " (Following)"
		}
		header = titleStyle.Render("LOGS: " + m.ActiveStage + mode)

		if node, ok := m.StageMap[m.ActiveStage]; ok {
			content = node.Term.View()
		}
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			content,
		),
	)
}
