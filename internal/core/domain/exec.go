package domain

import "strings"

// Command describes one external process invocation.
type Command struct {
	// Argv is the program followed by its arguments.
	Argv []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra environment variables layered over the inherited
	// allow-listed environment.
	Env map[string]string
}

// Program returns the executable name, or "" for an empty command.
func (c Command) Program() string {
	if len(c.Argv) == 0 {
		return ""
	}
	return c.Argv[0]
}

// String renders the command for logs and error context.
func (c Command) String() string {
	return strings.Join(c.Argv, " ")
}

// ExecResult is the structured outcome of a finished process. Failures are
// reported in-band through the exit code; the error return of an executor is
// reserved for processes that could not be started or were interrupted.
type ExecResult struct {
	// ExitCode is the process exit status.
	ExitCode int
	// Output is the captured, interleaved stdout and stderr.
	Output []byte
}

// Success reports whether the process exited cleanly.
func (r ExecResult) Success() bool {
	return r.ExitCode == 0
}

// Tail returns up to n trailing output lines, for attaching build output to
// errors without flooding them.
func (r ExecResult) Tail(n int) string {
	text := strings.TrimRight(string(r.Output), "\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
