// Package linear provides a synchronous, line-buffered renderer for CI environments.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// prefixPalette holds the colors assigned to stage prefixes. The color
// for a given stage name is stable across a run.
var prefixPalette = []termenv.Color{
	termenv.ANSIBlue,
	termenv.ANSIMagenta,
	termenv.ANSICyan,
	termenv.ANSIYellow,
	termenv.ANSIGreen,
	termenv.ANSIRed,
}

// Renderer implements ports.Renderer for CI/non-interactive environments.
// It outputs linear, chronological logs with stage name prefixes.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	stages  map[string]*stageState // keyed by span ID
	partial map[string][]byte      // unterminated line per span
}

type stageState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new linear Renderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	output := termenv.NewOutput(stderr, termenv.WithProfile(colorProfile()))

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output,
		stages:  make(map[string]*stageState),
		partial: make(map[string][]byte),
	}
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	// Basic color support is enough for CI logs.
	return termenv.ANSI
}

// Start is a no-op; rendering happens inline on each callback.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.partial {
		r.flushPartialLocked(spanID)
	}

	return nil
}

// Wait is a no-op; nothing runs in the background.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned stages.
func (r *Renderer) OnPlanEmit(stages []string, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning to run %d stage(s) for %s\n", len(stages), target)
}

// OnStageStart prints a stage start message.
func (r *Renderer) OnStageStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stages[spanID] = &stageState{
		name:      name,
		startTime: startTime,
	}

	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.stagePrefix(name))
}

// OnStageLog buffers output and prints complete lines with the stage prefix.
func (r *Renderer) OnStageLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	buf := append(r.partial[spanID], data...)
	for {
		line, rest, found := bytes.Cut(buf, []byte{'\n'})
		if !found {
			break
		}
		r.printLineLocked(stage.name, line)
		buf = rest
	}
	r.partial[spanID] = buf
}

// OnStageComplete flushes the remaining buffer and prints the completion status.
func (r *Renderer) OnStageComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	r.flushPartialLocked(spanID)

	duration := endTime.Sub(stage.startTime)
	prefix := fmt.Sprintf("[%s]", stage.name)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
			prefix, symbol, duration)
	}

	delete(r.stages, spanID)
	delete(r.partial, spanID)
}

// stagePrefix renders the bracketed stage name in its assigned color.
func (r *Renderer) stagePrefix(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	color := prefixPalette[h.Sum32()%uint32(len(prefixPalette))]

	return r.output.String("[" + name + "]").Foreground(color).String()
}

// flushPartialLocked prints any unterminated line for a stage.
// Must be called with r.mu held.
func (r *Renderer) flushPartialLocked(spanID string) {
	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	if rest := r.partial[spanID]; len(rest) > 0 {
		r.printLineLocked(stage.name, rest)
		r.partial[spanID] = nil
	}
}

// printLineLocked prints a line with the stage name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(stageName string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", stageName, string(line))
}
