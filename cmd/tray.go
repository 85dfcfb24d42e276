package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"ideabreak/internal/core/cycle"
	"ideabreak/internal/notify"
	"ideabreak/internal/storage"
	"ideabreak/internal/ui/preferences"
	"ideabreak/internal/ui/tray"
)

func runTray(settings storage.Settings, path string) error {
	fyneApp := app.NewWithID("com.ideabreak.app")
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		zlog.Warn().Msg("system tray unsupported on this platform, running headless")
		return runHeadless(settings)
	}

	buildOptions := notify.BuildOptions{AppName: appName, App: fyneApp}
	timer, dispatcher, err := newTimer(settings, buildOptions)
	if err != nil {
		return err
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated storage.Settings) error {
		return applySettings(path, updated, buildOptions, timer, dispatcher)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trayManager := tray.New(desktopApp, appName, tray.Callbacks{
		OnTogglePause: func() {
			if timer.Paused() {
				timer.Resume()
			} else {
				timer.Pause()
			}
		},
		OnSkipPhase:   timer.Skip,
		OnPreferences: prefsWindow.Show,
		OnQuit: func() {
			stop()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(theme.HistoryIcon())

	events := timer.Subscribe(16)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				handleEvent(event, trayManager)
			})
		}
	}()

	runErr := make(chan error, 1)
	go func() {
		runErr <- timer.Run(ctx)
		fyne.Do(fyneApp.Quit)
	}()

	fyneApp.Run()
	stop()
	return ignoreCancel(<-runErr)
}

// applySettings saves settings and hands them to the running timer. Backend
// changes apply to the next notification, durations and ideas from the next
// cycle.
func applySettings(path string, settings storage.Settings, options notify.BuildOptions, timer *cycle.Timer, dispatcher *notify.Dispatcher) error {
	chain, err := notify.Build(settings.Notifiers, options)
	if err != nil {
		return errors.Wrap(err, "build notifier")
	}
	if err := storage.SaveSettings(path, settings); err != nil {
		return errors.Wrapf(err, "save settings to %s", path)
	}
	if err := timer.UpdateConfig(settings.CycleConfig()); err != nil {
		return errors.Wrap(err, "update cycle timer")
	}
	dispatcher.SetNotifier(chain, settings.DeliveryDeadline())

	zlog.Info().Msgf("Preferences saved to %s: notifiers=%v", path, settings.Notifiers)
	return nil
}

func handleEvent(event cycle.Event, trayManager *tray.Manager) {
	switch event.Type {
	case cycle.EventPhaseStart, cycle.EventProgress:
		trayManager.SetStatus(tray.PhaseStatus(string(event.Phase), event.Remaining, event.Cycle))
	case cycle.EventPaused:
		trayManager.SetPaused(true)
	case cycle.EventResumed:
		trayManager.SetPaused(false)
	case cycle.EventStopped:
		trayManager.SetStatus("stopped")
	}
}
