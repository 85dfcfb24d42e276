package platform

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSingleInstance(t *testing.T) {
	appName := "ideabreak-test-" + t.Name()

	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	defer func() {
		_ = guard.Release()
	}()
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(appName)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
	assert.Contains(t, err.Error(), guard.Address())
	assert.Contains(t, err.Error(), guard.Holder())

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestInstanceGuard_Nil(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	assert.Empty(t, guard.Holder())
}

func TestHolderLine(t *testing.T) {
	since := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "pid 4242 since 2026-10-18 09:30:00", HolderLine(4242, since))
}

func TestPortFromName(t *testing.T) {
	port := portFromName("ideabreak")
	assert.Equal(t, port, portFromName("ideabreak"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestGetConfigDir(t *testing.T) {
	service := &platformService{
		configDir: func() (string, error) { return "/etc/xdg-user", nil },
		homeDir:   func() (string, error) { return "/home/user", nil },
	}
	dir, err := service.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/etc/xdg-user", dir)

	service.configDir = func() (string, error) { return "", errors.New("unset") }
	dir, err = service.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, fallbackConfigDir("/home/user"), dir)

	service.homeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = service.GetConfigDir()
	assert.ErrorContains(t, err, "get config dir")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "idea-break", slug(" Idea Break "))
	assert.Equal(t, "ideabreak", slug(""))
}

func TestEnableAutostart_Validation(t *testing.T) {
	service := NewService()
	assert.ErrorContains(t, service.EnableAutostart("", "/usr/bin/ideabreak"), "app name is empty")
	assert.ErrorContains(t, service.EnableAutostart("ideabreak", ""), "exec path is empty")
	assert.ErrorContains(t, service.DisableAutostart(""), "app name is empty")
}
