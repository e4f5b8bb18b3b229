package tui_test

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"

	"github.com/uibind/uibind/internal/adapters/tui"
	"github.com/uibind/uibind/internal/ui/style"
)

// plainModel builds a model with colors disabled so the rendered
// output can be matched with plain substrings.
func plainModel(t *testing.T) *tui.Model {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	model := tui.NewModel(io.Discard)
	m := &model

	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = updateModel(m, tui.MsgInitStages{
		Stages: []string{stageFetch, stageBuild},
		Target: "linux/amd64",
	})
	return m
}

func TestView_BeforeResize(t *testing.T) {
	m := &tui.Model{}
	assert.Contains(t, m.View(), "Initializing")
}

func TestView_StageListAndLogPane(t *testing.T) {
	m := plainModel(t)

	out := m.View()
	assert.Contains(t, out, "STAGES")
	assert.Contains(t, out, "linux/amd64")
	assert.Contains(t, out, stageFetch)
	assert.Contains(t, out, stageBuild)
	assert.Contains(t, out, "LOGS")
	assert.Contains(t, out, "Waiting")
}

func TestView_RunningStageShowsLogs(t *testing.T) {
	m := plainModel(t)

	m, _ = updateModel(m, tui.MsgStageStart{Name: stageFetch, SpanID: spanID1})
	m, _ = updateModel(m, tui.MsgStageLog{SpanID: spanID1, Data: []byte("cloning into staging\n")})

	out := m.View()
	assert.Contains(t, out, "LOGS: "+stageFetch)
	assert.Contains(t, out, "Following")
	assert.Contains(t, out, "cloning into staging")
}

func TestView_SelectionCursor(t *testing.T) {
	m := plainModel(t)
	m.FollowMode = false
	m.SelectedIdx = 1

	out := m.View()
	assert.Contains(t, out, "> "+style.Circle+" "+stageBuild)
}

func TestView_CompletionIcons(t *testing.T) {
	m := plainModel(t)

	m, _ = updateModel(m, tui.MsgStageStart{Name: stageFetch, SpanID: spanID1})
	m, _ = updateModel(m, tui.MsgStageComplete{SpanID: spanID1})
	m, _ = updateModel(m, tui.MsgStageStart{Name: stageBuild, SpanID: spanID2})
	m, _ = updateModel(m, tui.MsgStageComplete{SpanID: spanID2, Err: zerr.New("ninja failed")})

	out := m.View()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}
