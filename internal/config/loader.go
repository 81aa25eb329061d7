package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

// Load reads the duel config at path. An empty path yields the built-in
// normal and hard presets. Fields left out of the file keep their defaults.
func Load(path string) (*DuelConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	var fc DuelConfig
	if err := loadYAML(path, &fc); err != nil {
		return nil, err
	}
	if len(fc.Presets) > 0 {
		cfg.Presets = fc.Presets
	}
	if fc.Search.Seed != 0 {
		cfg.Search.Seed = fc.Search.Seed
	}
	cfg.Search.Rollouts = fc.Search.Rollouts
	cfg.Search.MaxCost = fc.Search.MaxCost
	cfg.Search.Timeout = fc.Search.Timeout
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
