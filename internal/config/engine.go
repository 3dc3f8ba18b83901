package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/platform"
)

// EngineConfigName is the optional tuning file inside the app data dir
const EngineConfigName = "engine.toml"

// engineConfig mirrors the TOML layout of the tuning file. Absent fields
// keep their defaults.
type engineConfig struct {
	UserAgent        string `toml:"user_agent"`
	Referer          string `toml:"referer"`
	ExtractorRetries int    `toml:"extractor_retries"`
	SocketTimeoutSec int    `toml:"socket_timeout_sec"`
}

// DefaultEngineConfigPath returns the tuning file location
func DefaultEngineConfigPath() (string, error) {
	dataDir, err := platform.AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, EngineConfigName), nil
}

// LoadEngineTuning reads the tuning file at path, falling back to defaults
// for a missing file or absent fields. A malformed file is an error; the
// caller decides whether to proceed on defaults.
func LoadEngineTuning(path string) (engine.Tuning, error) {
	tuning := engine.DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tuning, nil
		}
		return tuning, fmt.Errorf("read engine config: %w", err)
	}

	var cfg engineConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return tuning, fmt.Errorf("parse engine config %s: %w", path, err)
	}

	if cfg.UserAgent != "" {
		tuning.UserAgent = cfg.UserAgent
	}
	if cfg.Referer != "" {
		tuning.Referer = cfg.Referer
	}
	if cfg.ExtractorRetries > 0 {
		tuning.ExtractorRetries = cfg.ExtractorRetries
	}
	if cfg.SocketTimeoutSec > 0 {
		tuning.SocketTimeoutSec = cfg.SocketTimeoutSec
	}
	return tuning, nil
}
