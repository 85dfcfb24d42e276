package notify

import (
	"context"

	"fyne.io/fyne/v2"
	"github.com/cockroachdb/errors"
)

// Tray sends notifications through a running fyne application.
type Tray struct {
	app fyne.App
}

// NewTray creates a tray backend bound to app.
func NewTray(app fyne.App) *Tray {
	return &Tray{app: app}
}

// Name returns the backend name.
func (tray *Tray) Name() string {
	return BackendTray
}

// Notify hands the notification to fyne on its main goroutine.
func (tray *Tray) Notify(_ context.Context, notification Notification) error {
	if tray.app == nil {
		return NewDeliveryError(tray.Name(), errors.New("tray application is not running"))
	}
	app := tray.app
	fyne.Do(func() {
		app.SendNotification(fyne.NewNotification(notification.Title, notification.Message))
	})
	return nil
}
