package configcmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mtext-cli/internal/config"
	"github.com/open-cli-collective/mtext-cli/internal/view"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{DefaultFont: "Romans", Height: 3.5}).Save(configPath))

	var out bytes.Buffer
	err := runShow(&showOptions{configPath: configPath, noColor: true, out: &out})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Romans  (source: config)")
	assert.Contains(t, output, "3.5  (source: config)")
	assert.Contains(t, output, "0.2  (source: default)")
	assert.Contains(t, output, "Config file: "+configPath)
	assert.NotContains(t, output, "file not found")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("MTX_HEIGHT", "7")
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Height: 3.5}).Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runShow(&showOptions{configPath: configPath, noColor: true, out: &out}))

	assert.Contains(t, out.String(), "7  (source: MTX_HEIGHT)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	require.NoError(t, runShow(&showOptions{noColor: true, out: &out}))

	output := out.String()
	assert.Contains(t, output, "Arial  (source: default)")
	assert.Contains(t, output, "(file not found)")
}

func TestRunShow_JSON(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{DefaultFont: "Romans"}).Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runShow(&showOptions{configPath: configPath, output: "json", noColor: true, out: &out}))

	var result struct {
		Path     string         `json:"path"`
		Exists   bool           `json:"exists"`
		Settings []view.Setting `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, configPath, result.Path)
	assert.True(t, result.Exists)
	require.NotEmpty(t, result.Settings)
	assert.Equal(t, view.Setting{Name: "Font", Value: "Romans", Source: "config"}, result.Settings[0])
}

func TestRunShow_InvalidOutputFormat(t *testing.T) {
	err := runShow(&showOptions{output: "xml", out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
