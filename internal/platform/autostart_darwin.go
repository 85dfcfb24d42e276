//go:build darwin

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

	homeDir, err := service.homeDir()
	if err != nil {
		return errors.Wrap(err, "enable autostart: get home dir")
	}

	launchAgentsDir := filepath.Join(homeDir, "Library", "LaunchAgents")
	if err := os.MkdirAll(launchAgentsDir, 0o755); err != nil {
		return errors.Wrap(err, "enable autostart: create LaunchAgents dir")
	}

	label := launchAgentLabel(appName)
	plistPath := filepath.Join(launchAgentsDir, label+".plist")
	content := buildLaunchAgentPlist(label, append([]string{execPath}, args...))
	if err := os.WriteFile(plistPath, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "enable autostart: write plist")
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return errors.New("disable autostart: app name is empty")
	}

	homeDir, err := service.homeDir()
	if err != nil {
		return errors.Wrap(err, "disable autostart: get home dir")
	}

	plistPath := filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist")
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "disable autostart: remove plist")
	}

	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(appName string) string {
	return "com.ideabreak." + slug(appName)
}

func buildLaunchAgentPlist(label string, programArguments []string) string {
	var arguments strings.Builder
	for _, argument := range programArguments {
		arguments.WriteString("\t\t<string>" + xmlEscape(argument) + "</string>\n")
	}

	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`,
		xmlEscape(label),
		arguments.String(),
	)
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
