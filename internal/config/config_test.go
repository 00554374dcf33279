package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xplor/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
window:
  width: 1280
  height: 720
view:
  icon_size: 96
  show_hidden: true
  name_filters: ["*.png", "*.jpg"]
locations:
  documents: "/home/test/Docs"
  music: "/home/test/Tunes"
log:
  debug: true
  file: "/tmp/xplor.log"
`
	partialYAML = `
view:
  icon_size: 128
`
	invalidSyntaxYAML = `
window:
  width: "wide # Missing closing quote
`
	invalidIconSizeYAML = `
view:
  icon_size: 12
`
	unknownLocationYAML = `
locations:
  downloads: "/home/test/Downloads"
`
	emptyLocationYAML = `
locations:
  music: ""
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Assert specific loaded values
		assert.Equal(t, 1280, cfg.Window.Width)
		assert.Equal(t, 720, cfg.Window.Height)
		assert.Equal(t, 96, cfg.View.IconSize)
		assert.True(t, cfg.View.ShowHidden)
		assert.Equal(t, []string{"*.png", "*.jpg"}, cfg.View.NameFilters)
		assert.Equal(t, "/home/test/Docs", cfg.Locations["documents"])
		assert.Equal(t, "/home/test/Tunes", cfg.Locations["music"])
		assert.True(t, cfg.Log.Debug)
		assert.Equal(t, "/tmp/xplor.log", cfg.Log.File)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), "does_not_exist.yaml")
		cfg, err := config.LoadConfigFile(nonExistentPath)

		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		require.NotNil(t, cfg)

		// Check a few default values
		defaultCfg := config.New() // Get expected defaults
		assert.Equal(t, defaultCfg.Window.Width, cfg.Window.Width)
		assert.Equal(t, defaultCfg.Window.Height, cfg.Window.Height)
		assert.Equal(t, defaultCfg.View.IconSize, cfg.View.IconSize)
		assert.Equal(t, defaultCfg.View.ShowHidden, cfg.View.ShowHidden)
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		configFile := createTestYAML(t, partialYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		assert.Equal(t, 128, cfg.View.IconSize)
		assert.Equal(t, config.DefaultWindowWidth, cfg.Window.Width)
		assert.Equal(t, config.DefaultWindowHeight, cfg.Window.Height)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err, "Loading invalid YAML should return an error")
		assert.Contains(t, err.Error(), "error parsing config file", "Error message should indicate parsing failure")
	})

	t.Run("load file with out-of-range icon size", func(t *testing.T) {
		configFile := createTestYAML(t, invalidIconSizeYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err, "Loading config with invalid value should return an error")
		assert.Contains(t, err.Error(), "invalid configuration", "Error message should indicate validation failure")
		assert.Contains(t, err.Error(), "icon size must be within", "Error message should specify the validation issue")
	})

	t.Run("load file with unknown location", func(t *testing.T) {
		configFile := createTestYAML(t, unknownLocationYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown location")
	})

	t.Run("load file with empty location path", func(t *testing.T) {
		configFile := createTestYAML(t, emptyLocationYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "path cannot be empty")
	})
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *config.Config) {},
			wantErr: false,
		},
		{
			name:    "zero window width",
			mutate:  func(c *config.Config) { c.Window.Width = 0 },
			wantErr: true,
		},
		{
			name:    "negative window height",
			mutate:  func(c *config.Config) { c.Window.Height = -1 },
			wantErr: true,
		},
		{
			name:    "icon size below minimum",
			mutate:  func(c *config.Config) { c.View.IconSize = config.IconSizeMin - 1 },
			wantErr: true,
		},
		{
			name:    "icon size above maximum",
			mutate:  func(c *config.Config) { c.View.IconSize = config.IconSizeMax + 1 },
			wantErr: true,
		},
		{
			name:    "icon size at bounds",
			mutate:  func(c *config.Config) { c.View.IconSize = config.IconSizeMax },
			wantErr: false,
		},
		{
			name:    "empty name filter",
			mutate:  func(c *config.Config) { c.View.NameFilters = []string{""} },
			wantErr: true,
		},
		{
			name:    "malformed name filter",
			mutate:  func(c *config.Config) { c.View.NameFilters = []string{"["} },
			wantErr: true,
		},
		{
			name:    "unknown location override",
			mutate:  func(c *config.Config) { c.Locations["downloads"] = "/tmp/dl" },
			wantErr: true,
		},
		{
			name:    "empty location override path",
			mutate:  func(c *config.Config) { c.Locations["music"] = "" },
			wantErr: true,
		},
		{
			name:    "case-insensitive location override",
			mutate:  func(c *config.Config) { c.Locations["Music"] = "/srv/audio" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		cfg := config.New()
		cfg.Window.Width = 1440
		cfg.View.IconSize = 192
		cfg.View.ShowHidden = true
		cfg.View.NameFilters = []string{"*.go"}
		cfg.Locations["pictures"] = "/srv/photos"

		// Nested path exercises directory creation
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		require.NoError(t, config.SaveConfig(cfg, path))

		loaded, err := config.LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg.Window.Width, loaded.Window.Width)
		assert.Equal(t, cfg.View.IconSize, loaded.View.IconSize)
		assert.Equal(t, cfg.View.ShowHidden, loaded.View.ShowHidden)
		assert.Equal(t, cfg.View.NameFilters, loaded.View.NameFilters)
		assert.Equal(t, "/srv/photos", loaded.Locations["pictures"])
	})
}

func TestDefaultPath(t *testing.T) {
	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasSuffix(path, filepath.Join(".config", "xplor", "config.yaml")))
}
