// Package shell provides a shell-based executor for running build tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"github.com/uibind/uibind/internal/core/domain"
	"github.com/uibind/uibind/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run launches the command in a PTY where available and blocks until it
// exits. Output is streamed line-by-line to the structured logger and to out,
// and the full interleaved stream is captured in the result. A nonzero exit
// is reported through the result; the error return is reserved for commands
// that could not be started or were interrupted.
func (e *Executor) Run(ctx context.Context, cmd domain.Command, out io.Writer) (domain.ExecResult, error) {
	if len(cmd.Argv) == 0 {
		return domain.ExecResult{}, zerr.New("empty command")
	}

	name := cmd.Argv[0]
	args := cmd.Argv[1:]

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	// The filtered environment carries its own PATH, so resolution has to
	// run against that rather than the process PATH.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	capture := &bytes.Buffer{}
	logw := &logWriter{logger: e.logger}

	sinks := []io.Writer{capture, logw}
	if out != nil {
		sinks = append(sinks, out)
	}
	sink := io.MultiWriter(sinks...)

	c := newCmd(ctx, name, executable, args, cmd.Dir, cmdEnv)

	ptmx, err := pty.Start(c)
	if err != nil {
		// No PTY on this platform or in this environment. Re-run with
		// plain pipes; the exec.Cmd cannot be reused after a failed start.
		c = newCmd(ctx, name, executable, args, cmd.Dir, cmdEnv)
		c.Stdout = sink
		c.Stderr = sink
		waitErr := c.Run()
		_ = logw.Close()
		return finish(ctx, cmd, capture, waitErr)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Flush whatever the process left without a trailing newline.
		defer func() { _ = logw.Close() }()

		// The PTY merges stdout and stderr into a single stream.
		_, _ = io.Copy(sink, ptmx)
	}()

	waitErr := c.Wait()

	// Wait for the IO copy loop to finish so the capture is complete.
	<-ioDone

	return finish(ctx, cmd, capture, waitErr)
}

// LookPath resolves an executable against the hermetic environment's PATH.
// A missing tool is reported as domain.ErrToolNotFound carrying the tool name.
func (e *Executor) LookPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		if err := findExecutable(name); err != nil {
			return "", zerr.With(domain.ErrToolNotFound, "tool", name)
		}
		return name, nil
	}

	lp, err := lookPath(name, resolveEnvironment(os.Environ(), nil))
	if err != nil {
		return "", zerr.With(domain.ErrToolNotFound, "tool", name)
	}
	return lp, nil
}

// newCmd constructs the exec.Cmd for one invocation. Args[0] keeps the name
// as invoked even when the executable path was resolved.
func newCmd(ctx context.Context, name, executable string, args []string, dir string, env []string) *exec.Cmd {
	c := exec.CommandContext(ctx, executable, args...) //nolint:gosec // build tool invocation assembled from pinned configuration

	if len(c.Args) > 0 {
		c.Args[0] = name
	}
	if dir != "" {
		c.Dir = dir
	}
	c.Env = env

	return c
}

// finish converts the wait outcome into an ExecResult, keeping exit codes
// in-band and reserving the error return for interrupts and start failures.
func finish(ctx context.Context, cmd domain.Command, capture *bytes.Buffer, waitErr error) (domain.ExecResult, error) {
	result := domain.ExecResult{Output: capture.Bytes()}

	if waitErr == nil {
		return result, nil
	}

	if ctx.Err() != nil {
		return result, zerr.With(zerr.Wrap(ctx.Err(), "command interrupted"), "command", cmd.String())
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, zerr.With(zerr.Wrap(waitErr, "failed to run command"), "command", cmd.String())
}

// logWriter buffers raw process output and forwards complete lines to the
// structured logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		line, rest, found := bytes.Cut(w.buf, []byte{'\n'})
		if !found {
			break
		}
		w.logLine(line)
		w.buf = rest
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// Strip the \r a PTY appends to every line.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}

// allowListedEnvVars are the system environment variables that are allowed to
// be inherited by build tools. This keeps builds hermetic and reproducible
// while letting git, meson and the compilers function.
var allowListedEnvVars = map[string]struct{}{
	"HOME":            {},
	"TERM":            {},
	"USER":            {},
	"PATH":            {},
	"PKG_CONFIG_PATH": {},
}

// resolveEnvironment merges the allow-listed system environment with
// per-command overrides.
func resolveEnvironment(sysEnv []string, extra map[string]string) []string {
	merged := filterSystemEnv(sysEnv)
	for k, v := range extra {
		merged[k] = v
	}

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, k+"="+v)
	}
	return env
}

func filterSystemEnv(sysEnv []string) map[string]string {
	kept := make(map[string]string, len(allowListedEnvVars))
	for _, kv := range sysEnv {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			kept[k] = v
		}
	}
	return kept
}

// lookPath searches the directories of the given environment's PATH entry
// for an executable, mirroring exec.LookPath against a synthetic environment.
func lookPath(file string, env []string) (string, error) {
	var pathEnv string
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "PATH="); ok {
			pathEnv = v
			break
		}
	}

	if pathEnv == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			// An empty PATH element means the current directory.
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	if mode := info.Mode(); !mode.IsDir() && mode&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
