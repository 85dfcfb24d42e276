package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// DefaultDeliveryDeadline bounds a single backend call.
const DefaultDeliveryDeadline = 5 * time.Second

// Result is the outcome of a Deliver call.
type Result int

const (
	ResultDelivered Result = iota
	ResultFallback
	ResultFailed
)

func (result Result) String() string {
	switch result {
	case ResultDelivered:
		return "delivered"
	case ResultFallback:
		return "fallback"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Dispatcher sends notifications through a backend and prints a console
// line when the backend fails to deliver.
type Dispatcher struct {
	mu       sync.RWMutex
	notifier Notifier
	deadline time.Duration

	outMu    sync.Mutex
	fallback io.Writer
}

// DispatcherOption customises a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithFallback sets the writer that receives fallback lines. Defaults to stdout.
func WithFallback(out io.Writer) DispatcherOption {
	return func(dispatcher *Dispatcher) {
		if out != nil {
			dispatcher.fallback = out
		}
	}
}

// WithDeliveryDeadline bounds every backend call.
func WithDeliveryDeadline(deadline time.Duration) DispatcherOption {
	return func(dispatcher *Dispatcher) {
		if deadline > 0 {
			dispatcher.deadline = deadline
		}
	}
}

// NewDispatcher creates a dispatcher around notifier.
func NewDispatcher(notifier Notifier, options ...DispatcherOption) *Dispatcher {
	dispatcher := &Dispatcher{
		notifier: notifier,
		deadline: DefaultDeliveryDeadline,
		fallback: os.Stdout,
	}
	for _, option := range options {
		option(dispatcher)
	}
	return dispatcher
}

// SetNotifier replaces the backend used by later Deliver calls. A
// non-positive deadline keeps the current one.
func (dispatcher *Dispatcher) SetNotifier(notifier Notifier, deadline time.Duration) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	dispatcher.notifier = notifier
	if deadline > 0 {
		dispatcher.deadline = deadline
	}
}

// Deliver shows notification through the backend.
//
// Any backend failure, including a panic or a missed deadline, is recovered
// by printing "Notification failed: {title} - {message}" and yields
// ResultFallback with a nil error. Only invalid notifications and
// cancellation of ctx are returned to the caller.
func (dispatcher *Dispatcher) Deliver(ctx context.Context, notification Notification) (Result, error) {
	if err := notification.Validate(); err != nil {
		return ResultFailed, err
	}

	dispatcher.mu.RLock()
	notifier, deadline := dispatcher.notifier, dispatcher.deadline
	dispatcher.mu.RUnlock()

	if notifier == nil {
		return dispatcher.fallBack(notification, NewDeliveryError("none", errors.New("no backend configured")))
	}

	err := send(ctx, notifier, deadline, notification)
	switch {
	case err == nil:
		zlog.Debug().Msgf("notification delivered: backend=%s title=%q", notifier.Name(), notification.Title)
		return ResultDelivered, nil
	case ctx.Err() != nil:
		return ResultFailed, ctx.Err()
	default:
		return dispatcher.fallBack(notification, err)
	}
}

// send runs one backend call bounded by deadline. Every failure other than
// cancellation of ctx comes back as a *DeliveryError.
func send(ctx context.Context, notifier Notifier, deadline time.Duration, notification Notification) error {
	sendCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				done <- NewDeliveryError(notifier.Name(), errors.Newf("backend panicked: %v", recovered))
			}
		}()
		done <- notifier.Notify(sendCtx, notification)
	}()

	var err error
	select {
	case err = <-done:
	case <-sendCtx.Done():
		err = sendCtx.Err()
	}
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if IsDeliveryFailure(err) {
		return err
	}
	if sendCtx.Err() != nil {
		return NewDeliveryError(notifier.Name(),
			errors.Wrapf(sendCtx.Err(), "no response within %s", deadline))
	}
	return NewDeliveryError(notifier.Name(), err)
}

func (dispatcher *Dispatcher) fallBack(notification Notification, cause error) (Result, error) {
	zlog.Warn().Err(cause).Msgf("notification not delivered, printing to console: title=%q", notification.Title)

	dispatcher.outMu.Lock()
	defer dispatcher.outMu.Unlock()
	_, _ = fmt.Fprintln(dispatcher.fallback, FallbackLine(notification))
	return ResultFallback, nil
}

// FallbackLine formats the console line printed when delivery fails.
func FallbackLine(notification Notification) string {
	return fmt.Sprintf("Notification failed: %s - %s", notification.Title, notification.Message)
}
