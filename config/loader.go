package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/grovetools/pkgnav/errors"
)

// ConfigFileName is the canonical configuration file name.
const ConfigFileName = "pkgnav.yml"

// ExpandPath expands a leading ~ and any environment variables in a path.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// Load reads and validates the configuration at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.ConfigNotFound(path)
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeConfigInvalid, "read configuration")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeConfigInvalid, "parse configuration")
	}

	cfg.ApplyDefaults()
	cfg.Root = ExpandPath(cfg.Root)
	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.ConfigInvalid(err.Error())
	}

	return &cfg, nil
}

// LoadDefault locates and loads the configuration, falling back to built-in
// defaults when no file exists. Search order: $PKGNAV_CONFIG, ./pkgnav.yml,
// ~/.config/pkgnav/pkgnav.yml.
func LoadDefault() (*Config, error) {
	if envPath := os.Getenv("PKGNAV_CONFIG"); envPath != "" {
		return Load(ExpandPath(envPath))
	}

	candidates := []string{ConfigFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "pkgnav", ConfigFileName))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}

	// No file found, that's okay: run with defaults.
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Root = ExpandPath(cfg.Root)
	return cfg, nil
}
