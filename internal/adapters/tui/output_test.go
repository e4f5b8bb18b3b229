package tui_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/uibind/uibind/internal/adapters/tui"
)

func TestColorProfile(t *testing.T) {
	t.Run("NO_COLOR disables color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, termenv.Ascii, tui.ColorProfile())
	})

	t.Run("defaults to true color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.Equal(t, termenv.TrueColor, tui.ColorProfile())
	})
}

func TestNewOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	out := tui.NewOutput(&buf)

	assert.Equal(t, termenv.TrueColor, out.Profile)

	_, err := out.WriteString("hello")
	assert.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
}

func TestNewOutput_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = tui.NewOutput(nil)
	})
}
