package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the environment variable holding the config file path.
	PathEnv = "CONLANG_CONFIG"
	// DefaultPath is tried when neither a flag nor PathEnv names a file.
	DefaultPath = "conlang.yaml"
)

// Load reads engine settings from a YAML file overlaid with environment
// variables (ENV > YAML > env-default tags). path comes from the --config
// flag; when empty, PathEnv is consulted, then DefaultPath. Only a missing
// DefaultPath is tolerated: the settings then come from ENV and defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("conlang config %s: %w", path, err)
		}
	case explicit || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("conlang config %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("conlang config from env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("conlang config %s: %w", path, err)
	}
	return &cfg, nil
}
