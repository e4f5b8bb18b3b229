package tui

import (
	"time"
)

// MsgInitStages seeds the stage list before the pipeline starts.
type MsgInitStages struct {
	Stages []string
	Target string
}

// MsgStageStart indicates a stage (span) has started.
type MsgStageStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgStageLog carries a chunk of output for a running stage.
type MsgStageLog struct {
	SpanID string
	Data   []byte
}

// MsgStageComplete indicates a stage (span) has finished.
type MsgStageComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}
