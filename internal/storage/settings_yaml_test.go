package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideabreak/internal/core/model"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, 1500, settings.WorkDurationSeconds)
	assert.Equal(t, 300, settings.BreakDurationSeconds)
	assert.Equal(t, 10, settings.NotificationTimeoutSeconds)
	assert.Equal(t, 5, settings.DeliveryDeadlineSeconds)
	assert.Equal(t, model.DefaultIdeas, settings.Ideas)
	assert.Equal(t, []string{"dbus", "desktop"}, settings.Notifiers)
	require.NoError(t, settings.Validate())

	assert.Equal(t, model.DefaultCycleConfig(), settings.CycleConfig())
	assert.Equal(t, 5*time.Second, settings.DeliveryDeadline())
}

func TestLoadSettings_MissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettings_File(t *testing.T) {
	path := writeSettings(t, `
work_duration_seconds: 3000
ideas:
  - Write the changelog
  - Stretch
notifiers: [console]
`)

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, 3000, settings.WorkDurationSeconds)
	assert.Equal(t, 300, settings.BreakDurationSeconds)
	assert.Equal(t, []string{"Write the changelog", "Stretch"}, settings.Ideas)
	assert.Equal(t, []string{"console"}, settings.Notifiers)
	assert.Equal(t, 50*time.Minute, settings.CycleConfig().WorkDuration)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "unknown notifier",
			content: "notifiers: [pager]\n",
			errMsg:  "Notifiers",
		},
		{
			name:    "negative break",
			content: "break_duration_seconds: -5\n",
			errMsg:  "BreakDurationSeconds",
		},
		{
			name:    "blank idea",
			content: "ideas: [\"\"]\n",
			errMsg:  "Ideas",
		},
		{
			name:    "timeout too long",
			content: "notification_timeout_seconds: 3600\n",
			errMsg:  "NotificationTimeoutSeconds",
		},
		{
			name:    "explicit zero work",
			content: "work_duration_seconds: 0\n",
			errMsg:  "WorkDurationSeconds",
		},
		{
			name:    "empty idea list",
			content: "ideas: []\n",
			errMsg:  "Ideas",
		},
		{
			name:    "malformed yaml",
			content: "work_duration_seconds: [\n",
			errMsg:  "parse settings yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeSettings(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	t.Setenv(EnvWorkSeconds, "60")
	t.Setenv(EnvBreakSeconds, "30")
	t.Setenv(EnvNotifiers, "Console, desktop")

	path := writeSettings(t, "work_duration_seconds: 3000\n")
	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, 60, settings.WorkDurationSeconds)
	assert.Equal(t, 30, settings.BreakDurationSeconds)
	assert.Equal(t, []string{"console", "desktop"}, settings.Notifiers)
}

func TestLoadSettings_ExplicitZero(t *testing.T) {
	settings, err := LoadSettings(writeSettings(t, "notification_timeout_seconds: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, settings.NotificationTimeoutSeconds)
	assert.Equal(t, 1500, settings.WorkDurationSeconds)

	t.Setenv(EnvBreakSeconds, "0")
	_, err = LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BreakDurationSeconds")
}

func TestLoadSettings_BadEnv(t *testing.T) {
	t.Setenv(EnvWorkSeconds, "twenty")

	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvWorkSeconds)
}

func TestSaveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ideabreak", settingsFileName)
	settings := DefaultSettings()
	settings.BreakDurationSeconds = 600
	settings.Notifiers = []string{"tray", "console"}

	require.NoError(t, SaveSettings(path, settings))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	settings.Notifiers = []string{"pager"}
	assert.Error(t, SaveSettings(path, settings))
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath("ideabreak")
	if err != nil {
		t.Skipf("no config dir available: %v", err)
	}
	assert.Equal(t, settingsFileName, filepath.Base(path))
	assert.Equal(t, "ideabreak", filepath.Base(filepath.Dir(path)))
}
