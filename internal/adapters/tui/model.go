package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	stageListWidthRatio = 0.3
	logPaneBorderWidth  = 4
)

// StageStatus represents the current state of a stage.
type StageStatus string

const (
	// StatusPending indicates the stage is waiting to start.
	StatusPending StageStatus = "Pending"
	// StatusRunning indicates the stage is currently executing.
	StatusRunning StageStatus = "Running"
	// StatusDone indicates the stage completed successfully.
	StatusDone StageStatus = "Done"
	// StatusError indicates the stage failed.
	StatusError StageStatus = "Error"
)

// StageNode represents a single pipeline stage in the UI list.
type StageNode struct {
	Name   string
	Status StageStatus
	Term   *Vterm
}

// Model holds the interactive renderer state: the stage list on the left,
// one virtual terminal per stage, and the selection driving the log pane.
type Model struct {
	Stages      []*StageNode
	StageMap    map[string]*StageNode
	SpanMap     map[string]*StageNode
	Target      string
	Spinner     spinner.Model
	AutoScroll  bool
	ActiveStage string
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	LogWidth    int
	LogHeight   int
	FollowMode  bool
}

// Init starts the spinner tick loop.
func (m *Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			m.moveSelection(-1)
		case "j", "down":
			m.moveSelection(1)
		case "esc":
			m.resumeFollowing()
		default:
			// Remaining keys scroll the active stage's log pane.
			if node, ok := m.StageMap[m.ActiveStage]; ok {
				node.Term.Update(msg)
			}
		}

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case MsgInitStages:
		m.initStages(msg.Target, msg.Stages)

	case MsgStageStart:
		if node, ok := m.StageMap[msg.Name]; ok {
			node.Status = StatusRunning
			m.SpanMap[msg.SpanID] = node

			if m.FollowMode {
				m.selectStage(msg.Name)
			}
		}

	case MsgStageLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Term.Write(msg.Data)
		}

	case MsgStageComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
		}
	}

	return m, cmd
}

// moveSelection moves the stage cursor, leaving follow mode.
func (m *Model) moveSelection(delta int) {
	next := m.SelectedIdx + delta
	if next < 0 || next >= len(m.Stages) {
		return
	}

	m.SelectedIdx = next
	m.FollowMode = false
	m.scrollIntoView()
	m.syncLogPane()
}

// resumeFollowing reenables follow mode and jumps back to the running stage.
func (m *Model) resumeFollowing() {
	m.FollowMode = true

	for _, s := range m.Stages {
		if s.Status == StatusRunning {
			m.selectStage(s.Name)
			return
		}
	}

	m.scrollIntoView()
	m.syncLogPane()
}

// selectStage moves the cursor to the named stage.
func (m *Model) selectStage(name string) {
	for i, s := range m.Stages {
		if s.Name == name {
			m.SelectedIdx = i
			break
		}
	}

	m.scrollIntoView()
	m.syncLogPane()
}

// scrollIntoView keeps the selection inside the visible list window.
func (m *Model) scrollIntoView() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

// syncLogPane points the log pane at the selected stage.
func (m *Model) syncLogPane() {
	node := m.selectedStage()
	if node == nil {
		return
	}

	m.ActiveStage = node.Name
	if m.FollowMode && m.AutoScroll {
		node.Term.ScrollToBottom()
	}
}

func (m *Model) selectedStage() *StageNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Stages) {
		return m.Stages[m.SelectedIdx]
	}
	return nil
}

func (m *Model) resize(width, height int) {
	// The stage list takes the left third, logs take the rest.
	listWidth := int(float64(width) * stageListWidthRatio)
	m.LogWidth = width - listWidth - logPaneBorderWidth

	headerHeight := lipgloss.Height(titleStyle.Render("X"))
	m.LogHeight = height - headerHeight

	listHeader := titleStyle.Render("STAGES") + "\n\n"
	m.ListHeight = height - lipgloss.Height(listHeader)
	m.scrollIntoView()

	for _, node := range m.Stages {
		node.Term.SetWidth(m.LogWidth)
		node.Term.SetHeight(m.LogHeight)
	}
}

func (m *Model) initStages(target string, names []string) {
	m.Target = target
	m.Stages = make([]*StageNode, len(names))
	m.StageMap = make(map[string]*StageNode, len(names))
	m.SpanMap = make(map[string]*StageNode)

	for i, name := range names {
		term := NewVterm()
		if m.LogWidth > 0 && m.LogHeight > 0 {
			term.SetWidth(m.LogWidth)
			term.SetHeight(m.LogHeight)
		}

		m.Stages[i] = &StageNode{
			Name:   name,
			Status: StatusPending,
			Term:   term,
		}
		m.StageMap[name] = m.Stages[i]
	}
}
