package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.daybook.app", cfg.Server.BaseURL)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.BaseURL, cfg.Server.BaseURL)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: https://journal.example.com
  token: abc123
locale: fr-FR
timezone: Europe/Paris
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://journal.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "abc123", cfg.Server.Token)
	assert.Equal(t, "fr-FR", cfg.Locale)
	assert.Equal(t, "Europe/Paris", cfg.Timezone)
}

func TestLoad_EnvTokenOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  token: from-file
`)
	t.Setenv("DAYBOOK_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Server.Token)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
locale: de
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, DefaultConfig().Server.BaseURL, cfg.Server.BaseURL)
	assert.Equal(t, DefaultConfig().Timezone, cfg.Timezone)
}

func TestValidate(t *testing.T) {
	t.Run("rejects bad scheme", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.BaseURL = "ftp://example.com"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Timezone = "Mars/Olympus_Mons"
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})
}
