package notify

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrNoBackends is reported by an empty chain.
var ErrNoBackends = errors.New("no notification backends")

// Chain tries multiple backends in order until one delivers.
type Chain struct {
	notifiers []Notifier
}

// NewChain creates a new backend chain.
func NewChain(notifiers ...Notifier) *Chain {
	return &Chain{
		notifiers: notifiers,
	}
}

// Name returns the backend name.
func (c *Chain) Name() string {
	return "chain"
}

// Len returns the number of backends in the chain.
func (c *Chain) Len() int {
	return len(c.notifiers)
}

// Notify delivers through the first backend that succeeds. Any backend error
// moves on to the next one; when all fail the combined failures are returned
// as a *DeliveryError.
func (c *Chain) Notify(ctx context.Context, notification Notification) error {
	if len(c.notifiers) == 0 {
		return NewDeliveryError(c.Name(), ErrNoBackends)
	}

	var failures error
	for i, notifier := range c.notifiers {
		err := notifier.Notify(ctx, notification)
		if err == nil {
			if i > 0 {
				zlog.Debug().Msgf("notification delivered by backup backend: backend=%s attempt=%d", notifier.Name(), i+1)
			}
			return nil
		}
		zlog.Debug().Msgf("backend failed, trying next: backend=%s error=%v", notifier.Name(), err)
		failures = errors.CombineErrors(failures, err)

		if ctx.Err() != nil {
			break
		}
	}

	return NewDeliveryError(c.Name(), errors.Wrapf(failures, "all %d backends failed", len(c.notifiers)))
}
