package notify

import (
	"io"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/cockroachdb/errors"
)

// Backend names accepted by Build.
const (
	BackendDBus    = "dbus"
	BackendDesktop = "desktop"
	BackendTray    = "tray"
	BackendConsole = "console"
)

// BackendNames lists every backend Build understands.
func BackendNames() []string {
	return []string{BackendDBus, BackendDesktop, BackendTray, BackendConsole}
}

// BuildOptions carries what the backends need.
type BuildOptions struct {
	AppName string
	// Out receives console backend output. Defaults to stdout.
	Out io.Writer
	// App is required by the tray backend.
	App fyne.App
}

// Build creates a chain of the named backends in order.
func Build(names []string, options BuildOptions) (*Chain, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(ErrNoBackends, "build notifier")
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}

	notifiers := make([]Notifier, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case BackendDBus:
			notifiers = append(notifiers, NewDBus(options.AppName))
		case BackendDesktop:
			notifiers = append(notifiers, NewDesktop(options.AppName))
		case BackendTray:
			if options.App == nil {
				return nil, errors.Newf("backend %q requires tray mode", name)
			}
			notifiers = append(notifiers, NewTray(options.App))
		case BackendConsole:
			notifiers = append(notifiers, NewConsole(options.Out))
		default:
			return nil, errors.Newf("unknown notification backend %q", name)
		}
	}
	return NewChain(notifiers...), nil
}
