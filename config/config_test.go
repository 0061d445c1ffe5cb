package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/grovetools/pkgnav/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "root: /tmp/pkgs\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pkgs", cfg.Root)
	assert.Equal(t, DefaultBuildFile, cfg.BuildFile)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout.Std())
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval.Std())
	assert.Equal(t, DefaultPullCommand, cfg.Commands.Pull)
	assert.True(t, cfg.WatchEnabled())
}

func TestLoadParsesDurations(t *testing.T) {
	path := writeConfig(t, `
root: /tmp/pkgs
fetch_timeout: 5s
poll_interval: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout.Std())
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval.Std())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "fetch_timeout: banana\n")

	_, err := Load(path)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeConfigInvalid))
}

func TestLoadRejectsTooSmallPollInterval(t *testing.T) {
	path := writeConfig(t, "poll_interval: 1ms\n")

	_, err := Load(path)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeConfigInvalid))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/non/existent/pkgnav.yml")
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeConfigNotFound))
}

func TestLoadOverridesCommands(t *testing.T) {
	path := writeConfig(t, `
commands:
  build: "makepkg --noconfirm -cis"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "makepkg --noconfirm -cis", cfg.Commands.Build)
	assert.Equal(t, DefaultCleanCommand, cfg.Commands.Clean)
}

func TestWatchCanBeDisabled(t *testing.T) {
	path := writeConfig(t, "watch: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.WatchEnabled())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pkgbuilds"), ExpandPath("~/pkgbuilds"))
	assert.Equal(t, "/absolute", ExpandPath("/absolute"))
}
