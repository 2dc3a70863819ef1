// Package config handles the global varlet configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the global configuration stored in ~/.config/varlet/config.yml.
type Config struct {
	// StorePath overrides the default metastore location.
	StorePath string `yaml:"store_path,omitempty"`
	// SecretKey enables encryption of values at rest when non-empty.
	SecretKey string `yaml:"secret_key,omitempty"`
	// VariableFiles are read-only variable sources consulted before the
	// metastore, in order. Format is chosen by extension (.env/.json/.yaml).
	VariableFiles []string `yaml:"variable_files,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "varlet"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// StoreFile is the metastore file name under the data directory.
	StoreFile = "variables.db"
	// StorePathEnv overrides the store location, taking precedence over
	// the config file.
	StorePathEnv = "VARLET_STORE_PATH"
)

// Path returns the global config file path. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/varlet/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultStorePath returns the metastore location used when neither the
// environment nor the config file names one. Respects XDG_DATA_HOME,
// defaults to ~/.local/share/varlet/variables.db.
func DefaultStorePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, StoreFile)
}

// Load reads the global configuration file. A missing file is not an error;
// it yields an empty config so every setting falls back to its default.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.StorePath = ExpandTilde(cfg.StorePath)
	for i, f := range cfg.VariableFiles {
		cfg.VariableFiles[i] = ExpandTilde(f)
	}

	return &cfg, nil
}

// Save writes the configuration, creating the config directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ResolveStorePath picks the metastore location: VARLET_STORE_PATH wins,
// then store_path from the config file, then the default data directory.
func (c *Config) ResolveStorePath() string {
	if p := os.Getenv(StorePathEnv); p != "" {
		return ExpandTilde(p)
	}
	if c.StorePath != "" {
		return c.StorePath
	}
	return DefaultStorePath()
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
