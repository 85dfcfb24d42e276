package tray

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "25:00", FormatRemaining(25*time.Minute))
	assert.Equal(t, "04:59", FormatRemaining(299*time.Second))
	assert.Equal(t, "00:00", FormatRemaining(-time.Second))
	assert.Equal(t, "90:00", FormatRemaining(90*time.Minute))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "work 12:34 (cycle 3)", PhaseStatus("work", 12*time.Minute+34*time.Second, 3))
	assert.Equal(t, "Status: break 05:00 (cycle 1)", StatusLabel("break 05:00 (cycle 1)", false))
	assert.Equal(t, "Status: work 01:00 (cycle 2) (paused)", StatusLabel("work 01:00 (cycle 2)", true))
	assert.Equal(t, "Pause", PauseLabel(false))
	assert.Equal(t, "Resume", PauseLabel(true))
}

func TestManager_WithoutApp(t *testing.T) {
	toggled, skipped, prefs := 0, 0, 0
	manager := New(nil, "ideabreak", Callbacks{
		OnTogglePause: func() { toggled++ },
		OnSkipPhase:   func() { skipped++ },
		OnPreferences: func() { prefs++ },
	})

	assert.Equal(t, "Status: starting...", manager.statusItem.Label)

	manager.SetStatus("work 25:00 (cycle 1)")
	manager.SetPaused(true)
	assert.True(t, manager.Paused())
	assert.Equal(t, "Resume", manager.pauseItem.Label)
	assert.Equal(t, "Status: work 25:00 (cycle 1) (paused)", manager.statusItem.Label)

	manager.pauseItem.Action()
	manager.skipItem.Action()
	manager.prefsItem.Action()
	manager.quitItem.Action()
	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, prefs)
	assert.Equal(t, "Preferences…", manager.prefsItem.Label)
}
