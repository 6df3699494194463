package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names an explicit config file for Load.
const EnvConfigPath = "TOO_CONFIG"

// Load loads configuration from $TOO_CONFIG, or from
// ~/.config/too/config.yaml when that file exists.
func Load() (*Config, error) {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return LoadFromPath(expandHomeDir(path))
	}

	cfg := DefaultConfig()
	if path := DefaultPath(); path != "" {
		if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// ResolvePath returns the file Load would read: explicit if set, then
// $TOO_CONFIG, then DefaultPath when it exists. It returns "" when no
// file applies.
func ResolvePath(explicit string) string {
	if path := strings.TrimSpace(explicit); path != "" {
		return expandHomeDir(path)
	}
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return expandHomeDir(path)
	}
	if path := DefaultPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// DefaultPath returns ~/.config/too/config.yaml, or "" without a home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to HOME env var if UserHomeDir fails
		home = os.Getenv("HOME")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "too", "config.yaml")
}

// loadAndMerge decodes a YAML file over cfg. Keys absent from the file
// keep their current values.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment replace file settings.
func applyEnvOverrides(cfg *Config) {
	if v, ok := envString("TOO_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := envString("TOO_LOG_FILE"); ok {
		cfg.Logging.File = expandHomeDir(v)
	}
	if v, ok := envString("TOO_METRICS_ADDR"); ok {
		cfg.Telemetry.MetricsAddr = v
	}
	if v, ok := envString("TOO_TRACE_FILE"); ok {
		cfg.Telemetry.TraceFile = expandHomeDir(v)
	}
}

func envString(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
