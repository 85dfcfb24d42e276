//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

func (service *platformService) EnableAutostart(appName, execPath string, args ...string) error {
	if err := validateAutostart(appName, execPath); err != nil {
		return err
	}

	configDir, err := service.GetConfigDir()
	if err != nil {
		return errors.Wrap(err, "enable autostart")
	}

	autostartDir := filepath.Join(configDir, "autostart")
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return errors.Wrap(err, "enable autostart: create autostart dir")
	}

	desktopFilePath := filepath.Join(autostartDir, slug(appName)+".desktop")
	if err := os.WriteFile(desktopFilePath, []byte(buildDesktopEntry(appName, execPath, args)), 0o644); err != nil {
		return errors.Wrap(err, "enable autostart: write desktop entry")
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return errors.New("disable autostart: app name is empty")
	}

	configDir, err := service.GetConfigDir()
	if err != nil {
		return errors.Wrap(err, "disable autostart")
	}

	desktopFilePath := filepath.Join(configDir, "autostart", slug(appName)+".desktop")
	if err := os.Remove(desktopFilePath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "disable autostart: remove desktop entry")
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func buildDesktopEntry(appName, execPath string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, part := range append([]string{execPath}, args...) {
		if strings.Contains(part, " ") && !strings.HasPrefix(part, `"`) {
			part = `"` + part + `"`
		}
		parts = append(parts, part)
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		appName,
		strings.Join(parts, " "),
	)
}
