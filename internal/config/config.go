package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dooshek/zoomleaver/internal/fileops"
	"github.com/dooshek/zoomleaver/internal/keyboard"
	"github.com/dooshek/zoomleaver/internal/logger"
	"github.com/dooshek/zoomleaver/internal/types"
	"gopkg.in/yaml.v3"
)

// Defaults returns the configuration used when no file overrides a key.
func Defaults() types.Config {
	return types.Config{
		ParticipantThreshold: types.DefaultParticipantThreshold,
		CheckInterval:        types.DefaultCheckInterval,
		AutoStart:            false,
		LogActivity:          true,
		LeaveShortcut:        types.DefaultLeaveShortcut(),
		ConfirmLeave:         true,
	}
}

// DefaultPath returns ~/.config/zoomleaver/zoomleaver.yaml.
func DefaultPath() (string, error) {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return "", fmt.Errorf("failed to initialize file operations: %w", err)
	}
	return fileOps.GetConfigPath(), nil
}

// Load reads the file at path and merges it over the defaults key by key.
// It never fails: a missing file yields the defaults, an unreadable or
// corrupt file yields the defaults and is logged.
func Load(path string) types.Config {
	fileOps := fileops.NewFileOps(filepath.Dir(path))

	data, err := fileOps.LoadConfig(filepath.Base(path))
	if err != nil {
		if errors.Is(err, fileops.ErrConfigNotFound) {
			logger.Debugf("No config file at %s, using defaults", path)
		} else {
			logger.Errorf("Failed to read config file %s, using defaults", err, path)
		}
		return Defaults()
	}

	config := Defaults()
	if err := yaml.Unmarshal(data, &config); err != nil {
		logger.Errorf("Failed to parse config file %s, using defaults", err, path)
		return Defaults()
	}

	return Validate(config)
}

// Validate replaces out-of-range values with their defaults.
func Validate(config types.Config) types.Config {
	defaults := Defaults()

	if config.ParticipantThreshold <= 0 {
		logger.Warnf("participant_threshold must be greater than 0 (got %d), using %d",
			config.ParticipantThreshold, defaults.ParticipantThreshold)
		config.ParticipantThreshold = defaults.ParticipantThreshold
	}
	if config.CheckInterval <= 0 || config.CheckInterval > types.MaxCheckInterval {
		logger.Warnf("check_interval must be between 1 and %d (got %d), using %d",
			types.MaxCheckInterval, config.CheckInterval, defaults.CheckInterval)
		config.CheckInterval = defaults.CheckInterval
	}
	if _, err := keyboard.ParseShortcut(config.LeaveShortcut); err != nil {
		logger.Warnf("leave_shortcut: %v, using %s", err, defaults.LeaveShortcut)
		config.LeaveShortcut = defaults.LeaveShortcut
	}

	return config
}

// Save writes the whole record to path, replacing any previous file.
func Save(path string, config types.Config) error {
	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".zoomleaver-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	logger.Debugf("Config saved to %s", path)
	return nil
}
