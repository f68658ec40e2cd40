package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigTOML = `Title = "Swim Federation Admin"
DevMode = false

[Webserver]
Port = 8080
URL = "http://localhost:8080"
ShutDownTime = 5

[Log]
LogLevel = "warn"
AppName = "swimfed-admin"
ServiceName = "swimfed-admin"

[Log.Console]
enabled = true
UseConsoleWriter = true
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(testConfigTOML), 0o600)
	require.NoError(t, err)

	return dir + string(os.PathSeparator)
}

func TestStartPreRunInitializesLogger(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevLevel) })
	t.Cleanup(func() { configPath = ""; devMode = false })

	configPath = writeTestConfig(t)

	startCmd.PreRun(startCmd, nil)

	assert.Equal(t, "Swim Federation Admin", cfg.Title)
	assert.Equal(t, "warn", cfg.Log.LogLevel)

	// the configured level must reach the global zerolog pipeline
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestStartPreRunDevModeFlag(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevLevel) })
	t.Cleanup(func() { configPath = ""; devMode = false })

	configPath = writeTestConfig(t)
	devMode = true

	startCmd.PreRun(startCmd, nil)

	assert.True(t, cfg.DevMode)
}

func TestStartPreRunBadLogLevelPanics(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevLevel) })
	t.Cleanup(func() { configPath = ""; devMode = false })

	broken := `Title = "x"

[Webserver]
Port = 8080
URL = "http://localhost:8080"

[Log]
LogLevel = "nosuchlevel"
AppName = "swimfed-admin"
ServiceName = "swimfed-admin"
`

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(broken), 0o600)
	require.NoError(t, err)

	configPath = dir + string(os.PathSeparator)

	assert.Panics(t, func() { startCmd.PreRun(startCmd, nil) })
}
