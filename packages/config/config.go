package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the colrun project configuration
type Config struct {
	Timeout     int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds
	Delay       int               `json:"delay,omitempty" yaml:"delay,omitempty"`     // milliseconds
	Bail        *bool             `json:"bail,omitempty" yaml:"bail,omitempty"`
	ValidateSSL *bool             `json:"validateSSL,omitempty" yaml:"validateSSL,omitempty"`
	Proxy       string            `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	Reporter    string            `json:"reporter,omitempty" yaml:"reporter,omitempty"`
	OutputFile  string            `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
	Environment string            `json:"environment,omitempty" yaml:"environment,omitempty"` // default env file path
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Verbose     *bool             `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor     *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// ConfigFilenames contains the possible config file names, checked in order
var ConfigFilenames = []string{
	"colrun.json",
	"colrun.yaml",
	"colrun.yml",
	".colrunrc",
	".colrunrc.json",
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:  30000,
		Delay:    0,
		Reporter: "console",
	}
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// LoadConfig loads configuration from the specified path or searches the
// working directory for one of the known config file names.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory,
// returning defaults when none exists.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	return cfg, nil
}
