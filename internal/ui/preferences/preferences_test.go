package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideabreak/internal/storage"
)

func TestFormFromSettings(t *testing.T) {
	settings := storage.DefaultSettings()
	settings.BreakDurationSeconds = 90
	settings.Ideas = []string{"Invoice OCR", "Uptime pager"}

	form := FormFromSettings(settings)

	assert.Equal(t, "25", form.WorkMinutes)
	assert.Equal(t, "90s", form.BreakMinutes)
	assert.Equal(t, "10", form.TimeoutSeconds)
	assert.Equal(t, "5", form.DeadlineSeconds)
	assert.Equal(t, "Invoice OCR\nUptime pager", form.Ideas)
	assert.Equal(t, []string{"dbus", "desktop"}, form.Notifiers)
}

func TestForm_Apply(t *testing.T) {
	base := storage.DefaultSettings()

	tests := []struct {
		name   string
		mutate func(*Form)
		check  func(*testing.T, storage.Settings)
		errMsg string
	}{
		{
			name:   "unchanged form round trips",
			mutate: func(*Form) {},
			check: func(t *testing.T, settings storage.Settings) {
				assert.Equal(t, base, settings)
			},
		},
		{
			name: "minutes, seconds and ideas",
			mutate: func(form *Form) {
				form.WorkMinutes = " 50 "
				form.BreakMinutes = "45s"
				form.TimeoutSeconds = "0"
				form.Ideas = "  Invoice OCR \n\n Uptime pager\n"
				form.Notifiers = []string{"console"}
			},
			check: func(t *testing.T, settings storage.Settings) {
				assert.Equal(t, 3000, settings.WorkDurationSeconds)
				assert.Equal(t, 45, settings.BreakDurationSeconds)
				assert.Zero(t, settings.NotificationTimeoutSeconds)
				assert.Equal(t, []string{"Invoice OCR", "Uptime pager"}, settings.Ideas)
				assert.Equal(t, []string{"console"}, settings.Notifiers)
			},
		},
		{
			name:   "not a number",
			mutate: func(form *Form) { form.WorkMinutes = "half an hour" },
			errMsg: "work",
		},
		{
			name:   "zero break",
			mutate: func(form *Form) { form.BreakMinutes = "0" },
			errMsg: "BreakDurationSeconds",
		},
		{
			name:   "no ideas",
			mutate: func(form *Form) { form.Ideas = " \n " },
			errMsg: "Ideas",
		},
		{
			name:   "no notifiers",
			mutate: func(form *Form) { form.Notifiers = nil },
			errMsg: "Notifiers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := FormFromSettings(base)
			tt.mutate(&form)

			settings, err := form.Apply(base)

			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Equal(t, base, settings)
				return
			}
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestWindow_Save(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []storage.Settings
	var saveErr error
	prefs := New(app, storage.DefaultSettings(), func(settings storage.Settings) error {
		saved = append(saved, settings)
		return saveErr
	})

	prefs.work.SetText("abc")
	prefs.handleSave()
	assert.Empty(t, saved)
	assert.Contains(t, prefs.status.Text, "work")

	prefs.work.SetText("30")
	prefs.notifiers.SetSelected([]string{"console", "dbus"})
	saveErr = errors.New("disk full")
	prefs.handleSave()
	require.Len(t, saved, 1)
	assert.Equal(t, "disk full", prefs.status.Text)
	assert.Equal(t, 1500, prefs.settings.WorkDurationSeconds)

	saveErr = nil
	prefs.handleSave()
	require.Len(t, saved, 2)
	assert.Equal(t, 1800, saved[1].WorkDurationSeconds)
	assert.Equal(t, []string{"dbus", "console"}, saved[1].Notifiers)
	assert.Equal(t, saved[1], prefs.settings)
	assert.Empty(t, prefs.status.Text)
}
