// Package main provides the ideabreak entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"ideabreak/internal/core/cycle"
	"ideabreak/internal/logger"
	"ideabreak/internal/notify"
	"ideabreak/internal/platform"
	"ideabreak/internal/storage"
)

const appName = "ideabreak"

var (
	cli        = kingpin.New(appName, "Work/break cycle timer that suggests an idea every break")
	configPath = cli.Flag("config", "Path to settings file (default: <user config dir>/ideabreak/settings.yaml)").String()
	verbose    = cli.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = cli.Flag("logfile", "Path to log file (default: stderr)").String()

	runCmd   = cli.Command("run", "Start the cycle timer (default)").Default()
	headless = runCmd.Flag("headless", "Run in the terminal without a tray icon").Bool()

	ideasCmd = cli.Command("ideas", "List the break ideas and exit")

	configCmd     = cli.Command("config", "Manage the settings file")
	configInitCmd = configCmd.Command("init", "Write the default settings file")
	configForce   = configInitCmd.Flag("force", "Overwrite an existing settings file").Bool()

	autostartCmd        = cli.Command("autostart", "Manage starting at login")
	autostartEnableCmd  = autostartCmd.Command("enable", "Start ideabreak at login")
	autostartDisableCmd = autostartCmd.Command("disable", "Stop starting ideabreak at login")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(cli.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: "stderr", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	logCloser, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	if err := dispatch(command); err != nil {
		zlog.Error().Msgf("%s failed: %v", command, err)
		_ = logCloser.Close()
		os.Exit(1)
	}
	_ = logCloser.Close()
}

func dispatch(command string) error {
	switch command {
	case ideasCmd.FullCommand():
		return listIdeas(os.Stdout)
	case configInitCmd.FullCommand():
		return initConfig(*configForce)
	case autostartEnableCmd.FullCommand():
		return enableAutostart()
	case autostartDisableCmd.FullCommand():
		return platform.NewService().DisableAutostart(appName)
	default:
		return run()
	}
}

// run executes the timer. Using a separate function ensures deferred
// releases run even when returning with an error.
func run() error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return errors.Wrap(err, "another ideabreak is running")
	}
	defer func() {
		_ = guard.Release()
	}()

	zlog.Logger = zlog.With().Str("run_id", uuid.NewString()).Logger()
	zlog.Info().Msgf("Loaded settings from %s: notifiers=%v", path, settings.Notifiers)

	if *headless {
		return runHeadless(settings)
	}
	return runTray(settings, path)
}

func runHeadless(settings storage.Settings) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timer, _, err := newTimer(settings, notify.BuildOptions{AppName: appName})
	if err != nil {
		return err
	}
	return ignoreCancel(timer.Run(ctx))
}

func newTimer(settings storage.Settings, options notify.BuildOptions) (*cycle.Timer, *notify.Dispatcher, error) {
	chain, err := notify.Build(settings.Notifiers, options)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build notifier")
	}
	dispatcher := notify.NewDispatcher(chain, notify.WithDeliveryDeadline(settings.DeliveryDeadline()))

	timer, err := cycle.New(settings.CycleConfig(), dispatcher, cycle.Config{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "create cycle timer")
	}
	return timer, dispatcher, nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		zlog.Info().Msg("Received shutdown signal...")
		return nil
	}
	return err
}

func loadSettings() (storage.Settings, string, error) {
	path, err := settingsPath()
	if err != nil {
		return storage.Settings{}, "", err
	}
	settings, err := storage.LoadSettings(path)
	if err != nil {
		return storage.Settings{}, path, errors.Wrapf(err, "load settings from %s", path)
	}
	return settings, path, nil
}

func settingsPath() (string, error) {
	if *configPath != "" {
		return *configPath, nil
	}
	return storage.DefaultPath(appName)
}

func listIdeas(out io.Writer) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}
	for i, idea := range settings.Ideas {
		fmt.Fprintf(out, "%2d. %s\n", i+1, idea)
	}
	return nil
}

func initConfig(force bool) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Newf("%s already exists (use --force to overwrite)", path)
	}
	if err := storage.SaveSettings(path, storage.DefaultSettings()); err != nil {
		return err
	}
	fmt.Printf("Wrote default settings to %s\n", path)
	return nil
}

func enableAutostart() error {
	execPath, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "resolve executable")
	}
	args := []string{"run"}
	if *configPath != "" {
		args = append([]string{"--config", *configPath}, args...)
	}
	if err := platform.NewService().EnableAutostart(appName, execPath, args...); err != nil {
		return err
	}
	zlog.Info().Msgf("Autostart enabled: exec=%s", execPath)
	return nil
}
