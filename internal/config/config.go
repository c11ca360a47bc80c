package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/muurk/shiftdeck/internal/logging"
)

const (
	appName    = "shiftdeck"
	configFile = "config.yaml"
	logFile    = "shiftdeck.log"
)

// Poll interval bounds. Below the minimum the UI spins; above the maximum
// completion shows up noticeably late.
const (
	MinPollInterval = 10 * time.Millisecond
	MaxPollInterval = time.Second
)

// GetConfigDir returns the configuration directory:
// $XDG_CONFIG_HOME/shiftdeck or $HOME/.config/shiftdeck.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// DefaultLogPath returns where the interface logs when no file is configured.
func DefaultLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, logFile), nil
}

// Load reads the configuration at path, or at GetConfigPath when path is
// empty. A missing file yields the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.Timeshift.Binary == "" {
		return errors.New("timeshift.binary must not be empty")
	}
	if c.Timeshift.Sudo && c.Timeshift.SudoBinary == "" {
		return errors.New("timeshift.sudo_binary must not be empty when timeshift.sudo is set")
	}
	if c.UI.PollInterval < MinPollInterval || c.UI.PollInterval > MaxPollInterval {
		return fmt.Errorf("ui.poll_interval %v out of range [%v, %v]", c.UI.PollInterval, MinPollInterval, MaxPollInterval)
	}
	if c.UI.CommentLimit < 1 {
		return fmt.Errorf("ui.comment_limit must be positive, got %d", c.UI.CommentLimit)
	}
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	return nil
}

// Save writes the configuration to path atomically, creating the directory
// if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# shiftdeck configuration file
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
