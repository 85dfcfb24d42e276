// Package platform wraps the OS-specific pieces: config location, login
// autostart and the single-instance lock.
package platform

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string, args ...string) error
	DisableAutostart(appName string) error
}

type platformService struct {
	homeDir   func() (string, error)
	configDir func() (string, error)
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{
		homeDir:   os.UserHomeDir,
		configDir: os.UserConfigDir,
	}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := service.configDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := service.homeDir()
	if homeErr != nil {
		if err != nil {
			return "", errors.Wrap(err, "get config dir")
		}
		return "", errors.Wrap(homeErr, "get config dir")
	}

	return fallbackConfigDir(homeDir), nil
}

// slug turns an application name into a lowercase, dash separated identifier.
func slug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "ideabreak"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func validateAutostart(appName, execPath string) error {
	if appName == "" {
		return errors.New("enable autostart: app name is empty")
	}
	if execPath == "" {
		return errors.New("enable autostart: exec path is empty")
	}
	return nil
}
