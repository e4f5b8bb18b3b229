package linear_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.trai.ch/zerr"

	"github.com/uibind/uibind/internal/adapters/linear"
)

func TestRenderer_StageLifecycle(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	if err := r.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	r.OnPlanEmit([]string{"fetch sources", "build library"}, "linux/amd64")

	if !strings.Contains(stderr.String(), "Planning to run 2 stage(s)") {
		t.Errorf("Expected plan message in stderr, got: %s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "linux/amd64") {
		t.Errorf("Expected target in plan message, got: %s", stderr.String())
	}

	startTime := time.Now()
	r.OnStageStart("span1", "fetch sources", startTime)

	if !strings.Contains(stderr.String(), "[fetch sources]") {
		t.Errorf("Expected stage start message, got: %s", stderr.String())
	}

	r.OnStageLog("span1", []byte("first line\n"))
	r.OnStageLog("span1", []byte("second line\n"))

	stdoutStr := stdout.String()
	if !strings.Contains(stdoutStr, "[fetch sources] first line") {
		t.Errorf("Expected prefixed first line in stdout, got: %s", stdoutStr)
	}
	if !strings.Contains(stdoutStr, "[fetch sources] second line") {
		t.Errorf("Expected prefixed second line in stdout, got: %s", stdoutStr)
	}

	endTime := startTime.Add(100 * time.Millisecond)
	r.OnStageComplete("span1", endTime, nil)

	if !strings.Contains(stderr.String(), "Completed") {
		t.Errorf("Expected completion message, got: %s", stderr.String())
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestRenderer_PartialLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnStageStart("span1", "build library", startTime)

	r.OnStageLog("span1", []byte("partial"))
	if strings.Contains(stdout.String(), "partial") {
		t.Errorf("Partial line should not be printed immediately")
	}

	r.OnStageLog("span1", []byte(" line\n"))
	if !strings.Contains(stdout.String(), "[build library] partial line") {
		t.Errorf("Expected complete line, got: %s", stdout.String())
	}

	// Completion flushes whatever is left in the buffer.
	r.OnStageLog("span1", []byte("unflushed"))
	endTime := startTime.Add(50 * time.Millisecond)
	r.OnStageComplete("span1", endTime, nil)

	if !strings.Contains(stdout.String(), "[build library] unflushed") {
		t.Errorf("Expected flushed partial line on complete, got: %s", stdout.String())
	}
}

func TestRenderer_StageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnStageStart("span1", "build library", startTime)

	r.OnStageLog("span1", []byte("error output\n"))

	endTime := startTime.Add(50 * time.Millisecond)
	err := zerr.New("meson exited with status 1")
	r.OnStageComplete("span1", endTime, err)

	stderrStr := stderr.String()
	if !strings.Contains(stderrStr, "Failed") {
		t.Errorf("Expected failure message, got: %s", stderrStr)
	}
	if !strings.Contains(stderrStr, "meson exited with status 1") {
		t.Errorf("Expected error message, got: %s", stderrStr)
	}
}

func TestRenderer_ConcurrentStages(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnStageStart("span1", "fetch sources", startTime)
	r.OnStageStart("span2", "build library", startTime)

	// Interleaved logs stay attributed to their stage.
	r.OnStageLog("span1", []byte("fetch line 1\n"))
	r.OnStageLog("span2", []byte("build line 1\n"))
	r.OnStageLog("span1", []byte("fetch line 2\n"))
	r.OnStageLog("span2", []byte("build line 2\n"))

	stdoutStr := stdout.String()
	lines := strings.Split(strings.TrimSpace(stdoutStr), "\n")

	expectedPrefixes := map[string]int{
		"[fetch sources]": 2,
		"[build library]": 2,
	}

	for _, line := range lines {
		for prefix := range expectedPrefixes {
			if strings.Contains(line, prefix) {
				expectedPrefixes[prefix]--
			}
		}
	}

	for prefix, count := range expectedPrefixes {
		if count != 0 {
			t.Errorf("Expected prefix %s to appear exactly, remaining: %d", prefix, count)
		}
	}

	endTime := startTime.Add(100 * time.Millisecond)
	r.OnStageComplete("span1", endTime, nil)
	r.OnStageComplete("span2", endTime, nil)
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnStageStart("span1", "fetch sources", startTime)

	endTime := startTime.Add(50 * time.Millisecond)
	r.OnStageComplete("span1", endTime, nil)

	stderrStr := stderr.String()
	if strings.Contains(stderrStr, "\x1b[") {
		t.Errorf("Expected no ANSI codes with NO_COLOR, got: %s", stderrStr)
	}
}

func TestColorAssignment(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	stageNames := []string{
		"fetch sources",
		"build library",
		"extract declarations",
		"generate bindings",
		"write linkage",
	}

	colorSeen := make(map[string]struct{})

	for _, name := range stageNames {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			r := linear.NewRenderer(&stdout, &stderr)

			startTime := time.Now()
			r.OnStageStart("span1", name, startTime)

			first := stderr.String()

			stderr.Reset()
			r.OnStageStart("span2", name, startTime.Add(time.Second))

			second := stderr.String()

			if first != second {
				t.Errorf("Same stage name %q should produce same color output", name)
			}

			if !strings.Contains(first, "\x1b[") {
				t.Errorf("Expected ANSI color codes in output for stage %q", name)
			}

			colorSeen[first] = struct{}{}
		})
	}

	if len(colorSeen) < 2 {
		t.Errorf("Expected multiple different colors for different stages, got %d unique colors", len(colorSeen))
	}
}

func TestRenderer_OnStageLogUnknownSpan(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnStageLog("unknown-span", []byte("should be ignored\n"))

	if stdout.Len() != 0 {
		t.Errorf("Expected no output for unknown span, got: %s", stdout.String())
	}
}

func TestRenderer_OnStageCompleteUnknownSpan(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnStageComplete("unknown-span", time.Now(), nil)

	if stderr.Len() != 0 {
		t.Errorf("Expected no output for unknown span completion, got: %s", stderr.String())
	}
}

func TestRenderer_EmptyLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnStageStart("span1", "fetch sources", startTime)

	r.OnStageLog("span1", []byte("\n"))
	r.OnStageLog("span1", []byte("\r\n"))

	if strings.Contains(stdout.String(), "[fetch sources]") {
		t.Errorf("Expected no output for empty lines, got: %s", stdout.String())
	}
}

func TestRenderer_StopFlushesBuffers(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	startTime := time.Now()
	r.OnStageStart("span1", "fetch sources", startTime)
	r.OnStageStart("span2", "build library", startTime)

	r.OnStageLog("span1", []byte("partial1"))
	r.OnStageLog("span2", []byte("partial2"))

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	stdoutStr := stdout.String()
	if !strings.Contains(stdoutStr, "partial1") {
		t.Errorf("Expected flushed partial1, got: %s", stdoutStr)
	}
	if !strings.Contains(stdoutStr, "partial2") {
		t.Errorf("Expected flushed partial2, got: %s", stdoutStr)
	}
}

func TestRenderer_Wait(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	if err := r.Wait(); err != nil {
		t.Errorf("Wait() should not error, got: %v", err)
	}
}

func TestRenderer_NilStdout(_ *testing.T) {
	r := linear.NewRenderer(nil, nil)

	startTime := time.Now()
	r.OnStageStart("span1", "fetch sources", startTime)
	r.OnStageLog("span1", []byte("test\n"))
	r.OnStageComplete("span1", startTime.Add(time.Second), nil)
}