package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30000, cfg.Timeout)
	assert.Equal(t, 0, cfg.Delay)
	assert.Equal(t, "console", cfg.Reporter)
	assert.False(t, cfg.GetBail())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetNoColor())
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "colrun.json", `{
		"timeout": 5000,
		"delay": 250,
		"bail": true,
		"validateSSL": false,
		"reporter": "junit",
		"outputFile": "report.xml",
		"headers": {"X-Api-Key": "abc"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Timeout)
	assert.Equal(t, 250, cfg.Delay)
	assert.True(t, cfg.GetBail())
	assert.False(t, cfg.GetValidateSSL())
	assert.Equal(t, "junit", cfg.Reporter)
	assert.Equal(t, "report.xml", cfg.OutputFile)
	assert.Equal(t, "abc", cfg.Headers["X-Api-Key"])
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "colrun.yaml", `
timeout: 10000
reporter: json
environment: staging.json
verbose: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Timeout)
	assert.Equal(t, "json", cfg.Reporter)
	assert.Equal(t, "staging.json", cfg.Environment)
	assert.True(t, cfg.GetVerbose())
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "colrun.json", `{"delay": 100}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Delay)
	assert.Equal(t, 30000, cfg.Timeout)
	assert.Equal(t, "console", cfg.Reporter)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "colrun.json", `{bad`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "cannot parse config")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "cannot read config")
}

func TestFindAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colrun.yml", "reporter: tap\n")

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "tap", cfg.Reporter)
}

func TestFindAndLoadConfig_NoneFound(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFindAndLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colrun.json", `{"reporter": "json"}`)
	writeFile(t, dir, "colrun.yaml", "reporter: tap\n")

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Reporter)
}
