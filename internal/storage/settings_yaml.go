package storage

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ideabreak/internal/core/model"
	"ideabreak/internal/platform"
)

const settingsFileName = "settings.yaml"

// Environment variables that take precedence over the settings file.
const (
	EnvWorkSeconds  = "IDEABREAK_WORK_SECONDS"
	EnvBreakSeconds = "IDEABREAK_BREAK_SECONDS"
	EnvNotifiers    = "IDEABREAK_NOTIFIERS"
)

// DefaultNotifiers is the backend chain used when none is configured.
var DefaultNotifiers = []string{"dbus", "desktop"}

// Settings is the on-disk user configuration.
type Settings struct {
	WorkDurationSeconds        int      `yaml:"work_duration_seconds" default:"1500" validate:"gte=1"`
	BreakDurationSeconds       int      `yaml:"break_duration_seconds" default:"300" validate:"gte=1"`
	NotificationTimeoutSeconds int      `yaml:"notification_timeout_seconds" default:"10" validate:"gte=0,lte=600"`
	DeliveryDeadlineSeconds    int      `yaml:"delivery_deadline_seconds" default:"5" validate:"gte=1,lte=60"`
	Ideas                      []string `yaml:"ideas" validate:"min=1,dive,required"`
	Notifiers                  []string `yaml:"notifiers" validate:"min=1,dive,oneof=dbus desktop tray console"`
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	var settings Settings
	_ = settings.applyDefaults()
	return settings
}

// CycleConfig converts settings to the timer configuration.
func (settings Settings) CycleConfig() model.CycleConfig {
	return model.CycleConfig{
		WorkDuration:        time.Duration(settings.WorkDurationSeconds) * time.Second,
		BreakDuration:       time.Duration(settings.BreakDurationSeconds) * time.Second,
		NotificationTimeout: time.Duration(settings.NotificationTimeoutSeconds) * time.Second,
		Ideas:               append([]string(nil), settings.Ideas...),
	}
}

// DeliveryDeadline bounds a single notification backend call.
func (settings Settings) DeliveryDeadline() time.Duration {
	return time.Duration(settings.DeliveryDeadlineSeconds) * time.Second
}

// Validate validates the settings.
func (settings Settings) Validate() error {
	if err := validator.New().Struct(settings); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// DefaultPath returns <config dir>/<appName>/settings.yaml.
func DefaultPath(appName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve settings path")
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads settings from a YAML file.
// If the file does not exist, default settings are returned.
// Environment variables take precedence over file values. Keys missing from
// both keep their defaults; an explicit zero is kept and validated.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	rawData, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(rawData, &settings); err != nil {
			return DefaultSettings(), errors.Wrap(err, "parse settings yaml")
		}
	case os.IsNotExist(err):
	default:
		return DefaultSettings(), errors.Wrap(err, "read settings file")
	}

	if err := settings.overrideFromEnv(); err != nil {
		return DefaultSettings(), err
	}
	if err := settings.Validate(); err != nil {
		return DefaultSettings(), errors.Wrap(err, "settings validation failed")
	}
	return settings, nil
}

// SaveSettings writes settings to a YAML file, creating its directory.
func SaveSettings(path string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	serialized, err := yaml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "marshal settings yaml")
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return errors.Wrap(err, "write settings file")
	}
	return nil
}

func (settings *Settings) applyDefaults() error {
	if err := defaults.Set(settings); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if len(settings.Ideas) == 0 {
		settings.Ideas = append([]string(nil), model.DefaultIdeas...)
	}
	if len(settings.Notifiers) == 0 {
		settings.Notifiers = append([]string(nil), DefaultNotifiers...)
	}
	return nil
}

func (settings *Settings) overrideFromEnv() error {
	if v := os.Getenv(EnvWorkSeconds); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvWorkSeconds)
		}
		settings.WorkDurationSeconds = seconds
	}
	if v := os.Getenv(EnvBreakSeconds); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvBreakSeconds)
		}
		settings.BreakDurationSeconds = seconds
	}
	if v := os.Getenv(EnvNotifiers); v != "" {
		var notifiers []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				notifiers = append(notifiers, strings.ToLower(name))
			}
		}
		settings.Notifiers = notifiers
	}
	return nil
}
