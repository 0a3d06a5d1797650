package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DataFile string `toml:"data_file"`
	Theme    string `toml:"theme"`
	TickMs   int    `toml:"tick_ms"`
}

// tickInterval returns the configured tick interval, fixed for the
// lifetime of the session.
func (c Config) tickInterval() time.Duration {
	if c.TickMs <= 0 {
		return defaultTickInterval
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

func configPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "taskdeck", "config.toml"), nil
}

// loadConfig reads the config file. A missing file is not an error;
// every key has a usable default.
func loadConfig() (Config, string, error) {
	path, err := configPath()

	if err != nil {
		return Config{}, "", err
	}

	data, err := os.ReadFile(path)

	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, path, nil
		}

		return Config{}, path, err
	}

	var cfg Config

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, path, err
	}

	return cfg, path, nil
}

func expandPath(value string) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return value, nil
	}

	expanded := os.ExpandEnv(value)

	if !strings.HasPrefix(expanded, "~") {
		return expanded, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if expanded == "~" {
		return homeDir, nil
	}

	if strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, "~\\") {
		return filepath.Join(homeDir, expanded[2:]), nil
	}

	return expanded, nil
}

// dataFilePath resolves the store's backing file: the configured
// data_file when set (relative paths resolve against the home
// directory), otherwise the XDG data directory.
func dataFilePath(cfg Config) (string, error) {
	if cfg.DataFile != "" {
		expanded, err := expandPath(cfg.DataFile)

		if err != nil {
			return "", err
		}

		if filepath.IsAbs(expanded) {
			return filepath.Clean(expanded), nil
		}

		homeDir, err := os.UserHomeDir()

		if err != nil {
			return "", err
		}

		return filepath.Join(homeDir, expanded), nil
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "taskdeck", "tasks.json"), nil
}

// logFilePath resolves the debug log location in the XDG state
// directory.
func logFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, "taskdeck", "taskdeck.log"), nil
}
