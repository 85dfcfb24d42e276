// Package notify delivers phase notifications to desktop backends and falls
// back to the console when a backend cannot deliver.
package notify

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrInvalidNotification indicates a notification that no backend should see.
var ErrInvalidNotification = errors.New("invalid notification")

// Notification is a single transient message shown to the user.
type Notification struct {
	Title   string
	Message string
	Timeout time.Duration
}

// Validate reports whether the notification can be handed to a backend.
func (notification Notification) Validate() error {
	if notification.Title == "" {
		return errors.Wrap(ErrInvalidNotification, "title is empty")
	}
	if notification.Message == "" {
		return errors.Wrap(ErrInvalidNotification, "message is empty")
	}
	if notification.Timeout < 0 {
		return errors.Wrapf(ErrInvalidNotification, "negative timeout %s", notification.Timeout)
	}
	return nil
}

// Notifier is a notification backend.
//
// Implementations report a failure to reach the user as a *DeliveryError.
// Any other error is treated as a bug by the dispatcher and is not masked.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, notification Notification) error
}

// DeliveryError reports that a backend could not show a notification.
type DeliveryError struct {
	Backend string
	Err     error
}

// NewDeliveryError wraps err as a delivery failure of the named backend.
func NewDeliveryError(backend string, err error) error {
	return &DeliveryError{Backend: backend, Err: err}
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return "deliver via " + e.Backend + ": unknown failure"
	}
	return "deliver via " + e.Backend + ": " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsDeliveryFailure reports whether err is, or wraps, a *DeliveryError.
func IsDeliveryFailure(err error) bool {
	var deliveryErr *DeliveryError
	return errors.As(err, &deliveryErr)
}
