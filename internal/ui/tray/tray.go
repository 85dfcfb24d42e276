package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnTogglePause func()
	OnSkipPhase   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	skipItem    *fyne.MenuItem
	prefsItem   *fyne.MenuItem
	quitItem    *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		title:       title,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.skipItem = fyne.NewMenuItem("Skip phase", func() {
		if manager.callbacks.OnSkipPhase != nil {
			manager.callbacks.OnSkipPhase()
		}
	})

	manager.prefsItem = fyne.NewMenuItem("Preferences…", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	manager.pauseItem.Label = PauseLabel(paused)
	manager.refreshStatus()
}

// Paused reports the pause state shown in the menu.
func (manager *Manager) Paused() bool {
	return manager.paused
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = StatusLabel(manager.statusLabel, manager.paused)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
			manager.statusItem,
			fyne.NewMenuItemSeparator(),
			manager.pauseItem,
			manager.skipItem,
			fyne.NewMenuItemSeparator(),
			manager.prefsItem,
			manager.quitItem,
		))
	}
}

// PauseLabel returns the label of the pause toggle.
func PauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

// StatusLabel returns the label of the status line.
func StatusLabel(status string, paused bool) string {
	if paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

// PhaseStatus describes a running phase, e.g. "work 12:34 (cycle 3)".
func PhaseStatus(phase string, remaining time.Duration, cycle int) string {
	return fmt.Sprintf("%s %s (cycle %d)", phase, FormatRemaining(remaining), cycle)
}

// FormatRemaining renders a duration as mm:ss.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
