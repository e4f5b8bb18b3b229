// Package detector decides which renderer a run gets.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects between the interactive and the linear renderer.
type OutputMode int

const (
	// ModeAuto detects the mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI is the interactive full-screen renderer.
	ModeTUI
	// ModeLinear is the line-oriented renderer for CI and pipes.
	ModeLinear
)

// DetectEnvironment picks the mode for the current process. The TUI needs
// stdout on a terminal and no CI marker; anything else renders linearly.
func DetectEnvironment() OutputMode {
	if ci := os.Getenv("CI"); ci == "true" || ci == "1" {
		return ModeLinear
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's --output-mode flag on top of detection.
// Recognized values are "tui", "linear", "ci", "auto" and empty; anything
// else falls back to the detected mode.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
