package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_LongDescribesControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Controls:")
	assert.Contains(t, tuiCmd.Long, "ctrl+s")
}

func TestTUICmd_NoSession(t *testing.T) {
	_, _, err := execute(t, "", "tui")
	assert.ErrorIs(t, err, errSessionNotConfigured)
}
