package config

import (
	"fmt"
	"os"
	"path/filepath"

	"xplor/internal/locations"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Icon size bounds for the list view's icon mode. The slider is clamped to
// this range, so configured values outside it are rejected.
const (
	IconSizeMin = 48
	IconSizeMax = 256
)

// Default window geometry, half of a 1920x1080 reference screen.
const (
	DefaultWindowWidth  = 960
	DefaultWindowHeight = 540
)

// Config represents the application configuration structure.
// It defines window geometry, view preferences, location overrides and
// logging options.
type Config struct {
	Window struct {
		Width  int `yaml:"width"`  // Initial window width in pixels
		Height int `yaml:"height"` // Initial window height in pixels
	} `yaml:"window"`
	View struct {
		IconSize    int      `yaml:"icon_size"`    // Icon edge length, within [48,256]
		ShowHidden  bool     `yaml:"show_hidden"`  // Show dotfiles
		NameFilters []string `yaml:"name_filters"` // Glob patterns applied to file names
	} `yaml:"view"`
	// Locations maps a standard location name (home, desktop, documents,
	// movies, pictures, music) to an explicit directory path, overriding
	// platform resolution.
	Locations map[string]string `yaml:"locations"`
	Log       struct {
		Debug bool   `yaml:"debug"` // Enable debug logging
		File  string `yaml:"file"`  // Optional log file path
	} `yaml:"log"`
}

// DefaultPath returns the default config file location
// (~/.config/xplor/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "xplor", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	// Try to read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if tempCfg.Window.Width > 0 {
		cfg.Window.Width = tempCfg.Window.Width
	}
	if tempCfg.Window.Height > 0 {
		cfg.Window.Height = tempCfg.Window.Height
	}
	if tempCfg.View.IconSize > 0 {
		cfg.View.IconSize = tempCfg.View.IconSize
	}
	cfg.View.ShowHidden = tempCfg.View.ShowHidden
	if len(tempCfg.View.NameFilters) > 0 {
		cfg.View.NameFilters = tempCfg.View.NameFilters
	}

	// Merge location overrides
	cfg.Locations = make(map[string]string)
	for name, dir := range tempCfg.Locations {
		cfg.Locations[name] = dir
	}

	cfg.Log.Debug = tempCfg.Log.Debug
	if tempCfg.Log.File != "" {
		cfg.Log.File = tempCfg.Log.File
	}

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Width = DefaultWindowWidth
	cfg.Window.Height = DefaultWindowHeight

	cfg.View.IconSize = IconSizeMin
	cfg.View.ShowHidden = false
	cfg.View.NameFilters = []string{}

	cfg.Locations = make(map[string]string)

	cfg.Log.Debug = false
	cfg.Log.File = ""

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal the config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write the data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	// Validate window geometry
	if c.Window.Width < 1 {
		return fmt.Errorf("window width must be >= 1")
	}
	if c.Window.Height < 1 {
		return fmt.Errorf("window height must be >= 1")
	}

	// Validate icon size bounds
	if c.View.IconSize < IconSizeMin || c.View.IconSize > IconSizeMax {
		return fmt.Errorf("icon size must be within [%d,%d]: %d", IconSizeMin, IconSizeMax, c.View.IconSize)
	}

	// Validate name filters compile as globs
	for i, pattern := range c.View.NameFilters {
		if pattern == "" {
			return fmt.Errorf("name filter %d: pattern cannot be empty", i)
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("name filter %d: invalid pattern %q: %w", i, pattern, err)
		}
	}

	// Validate location overrides name known locations
	for name, dir := range c.Locations {
		if _, ok := locations.Parse(name); !ok {
			return fmt.Errorf("unknown location: %s", name)
		}
		if dir == "" {
			return fmt.Errorf("location %s: path cannot be empty", name)
		}
	}

	return nil
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.View.IconSize = 64
	cfg.View.ShowHidden = true
	cfg.Log.Debug = true
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
