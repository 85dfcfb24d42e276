package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Console prints notifications as plain lines.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console backend writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Name returns the backend name.
func (console *Console) Name() string {
	return BackendConsole
}

// Notify writes "{title}: {message}".
func (console *Console) Notify(_ context.Context, notification Notification) error {
	console.mu.Lock()
	defer console.mu.Unlock()

	if _, err := fmt.Fprintf(console.out, "%s: %s\n", notification.Title, notification.Message); err != nil {
		return NewDeliveryError(console.Name(), err)
	}
	return nil
}
