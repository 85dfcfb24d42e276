//go:build windows

package platform

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName, execPath string, args ...string) error {
	if err := validateAutostart(appName, execPath); err != nil {
		return err
	}

	command := exec.Command(
		"reg", "add", registryRunKey,
		"/v", appName,
		"/t", "REG_SZ",
		"/d", runCommand(execPath, args),
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "enable autostart: reg add failed: %s", strings.TrimSpace(string(output)))
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return errors.New("disable autostart: app name is empty")
	}

	command := exec.Command("reg", "delete", registryRunKey, "/v", appName, "/f")
	output, err := command.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "disable autostart: reg delete failed: %s", strings.TrimSpace(string(output)))
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func runCommand(execPath string, args []string) string {
	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	if len(args) == 0 {
		return quoted
	}
	return quoted + " " + strings.Join(args, " ")
}
