package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile is the profile for the interactive renderer. NO_COLOR
// disables color; everything else gets TrueColor, since the TUI only runs
// when stdout is a terminal.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.TrueColor
}

// NewOutput wraps w in a termenv.Output with the forced profile. A nil
// writer falls back to stderr.
func NewOutput(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
