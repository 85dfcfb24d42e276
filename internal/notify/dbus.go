package notify

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	zlog "github.com/rs/zerolog/log"
)

const (
	dbusDestination = "org.freedesktop.Notifications"
	dbusPath        = "/org/freedesktop/Notifications"
	dbusNotify      = dbusDestination + ".Notify"
)

// DBus talks to the freedesktop notification daemon on the session bus.
// Unlike the desktop backend it honours the notification timeout.
type DBus struct {
	appName string
	object  func() (dbus.BusObject, error)
}

// NewDBus creates a D-Bus backend that labels notifications with appName.
func NewDBus(appName string) *DBus {
	return &DBus{appName: appName, object: sessionNotifications}
}

func sessionNotifications() (dbus.BusObject, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "connect session bus")
	}
	return conn.Object(dbusDestination, dbus.ObjectPath(dbusPath)), nil
}

// Name returns the backend name.
func (backend *DBus) Name() string {
	return BackendDBus
}

// Notify calls org.freedesktop.Notifications.Notify.
func (backend *DBus) Notify(ctx context.Context, notification Notification) error {
	object, err := backend.object()
	if err != nil {
		return NewDeliveryError(backend.Name(), err)
	}

	call := object.CallWithContext(ctx, dbusNotify, 0,
		backend.appName,
		uint32(0),
		"",
		notification.Title,
		notification.Message,
		[]string{},
		map[string]dbus.Variant{},
		expireTimeout(notification.Timeout),
	)
	if call.Err != nil {
		return NewDeliveryError(backend.Name(), errors.Wrap(call.Err, "call Notify"))
	}

	var id uint32
	if err := call.Store(&id); err == nil {
		zlog.Debug().Msgf("dbus notification shown: id=%d", id)
	}
	return nil
}

// expireTimeout converts a display timeout to the milliseconds the daemon
// expects; -1 leaves the choice to the daemon.
func expireTimeout(timeout time.Duration) int32 {
	if timeout <= 0 {
		return -1
	}
	return int32(timeout / time.Millisecond)
}
