package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Renderer wraps the TUI Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	program := tea.NewProgram(model, opts...)
	return &Renderer{
		program: program,
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit forwards the stage plan to the TUI.
func (r *Renderer) OnPlanEmit(stages []string, target string) {
	r.program.Send(MsgInitStages{
		Stages: stages,
		Target: target,
	})
}

// OnStageStart forwards stage start events to the TUI.
func (r *Renderer) OnStageStart(spanID, name string, startTime time.Time) {
	r.program.Send(MsgStageStart{
		SpanID:    spanID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnStageLog forwards stage output to the TUI.
func (r *Renderer) OnStageLog(spanID string, data []byte) {
	r.program.Send(MsgStageLog{
		SpanID: spanID,
		Data:   data,
	})
}

// OnStageComplete forwards stage completion events to the TUI.
func (r *Renderer) OnStageComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(MsgStageComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Err:     err,
	})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
