package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mtext-cli/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configPath := filepath.Join(tmpDir, "mtx", "config.yml")
	require.NoError(t, (&config.Config{DefaultFont: "Romans"}).Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runClear(&clearOptions{noColor: true, out: &out}))

	// Verify file is deleted
	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "Configuration cleared from "+configPath)
}

func TestRunClear_ExplicitPath(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, (&config.Config{Height: 3}).Save(configPath))

	require.NoError(t, runClear(&clearOptions{configPath: configPath, noColor: true, out: &bytes.Buffer{}}))

	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_NoConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Should not error even if file doesn't exist
	var out bytes.Buffer
	require.NoError(t, runClear(&clearOptions{noColor: true, out: &out}))
	assert.Contains(t, out.String(), "No config file to remove")
}

func TestRunClear_ReportsActiveEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MTX_FONT", "Romans")

	var out bytes.Buffer
	require.NoError(t, runClear(&clearOptions{noColor: true, out: &out}))
	assert.Contains(t, out.String(), "Environment variables will still be used: MTX_FONT")
}

func TestRunClear_Idempotent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Running twice should succeed
	require.NoError(t, runClear(&clearOptions{noColor: true, out: &bytes.Buffer{}}))
	require.NoError(t, runClear(&clearOptions{noColor: true, out: &bytes.Buffer{}}))
}
