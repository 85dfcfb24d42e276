package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// Desktop shows notifications through the platform notifier picked by beeep
// (notify-send or D-Bus on Linux, osascript on macOS, toast on Windows).
type Desktop struct {
	notify func(title, message string) error
}

// NewDesktop creates a desktop backend that labels notifications with appName.
func NewDesktop(appName string) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Desktop{notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

// Name returns the backend name.
func (desktop *Desktop) Name() string {
	return BackendDesktop
}

// Notify shows the notification. beeep has no display timeout parameter, so
// the platform default applies.
//
// beeep takes no context either: a call that hangs keeps its goroutine until
// the platform notifier returns, even after the dispatcher deadline has
// reported a failure. Prefer the dbus backend where a session bus exists.
func (desktop *Desktop) Notify(ctx context.Context, notification Notification) error {
	if err := ctx.Err(); err != nil {
		return NewDeliveryError(desktop.Name(), err)
	}
	if err := desktop.notify(notification.Title, notification.Message); err != nil {
		return NewDeliveryError(desktop.Name(), err)
	}
	return nil
}
