package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("invalid duel config")

type DuelConfig struct {
	Presets []PresetDef `yaml:"presets"`
	Search  SearchDef   `yaml:"search"`
}

// PresetDef is one caster setup the solver runs against the boss.
type PresetDef struct {
	Name       string `yaml:"name"`
	Difficulty string `yaml:"difficulty"`
	HP         int    `yaml:"hp"`
	Mana       int    `yaml:"mana"`
	Note       string `yaml:"note"`
}

type SearchDef struct {
	Seed     int64 `yaml:"seed"`
	Rollouts int   `yaml:"rollouts"`
	// MaxCost prunes states above this cost; 0 disables it.
	MaxCost int `yaml:"max_cost"`
	// Timeout is a Go duration string such as "30s" or "2m".
	Timeout time.Duration `yaml:"timeout"`
}

func Default() *DuelConfig {
	return &DuelConfig{
		Presets: []PresetDef{
			{Name: "normal", Difficulty: "normal", HP: 50, Mana: 500},
			{Name: "hard", Difficulty: "hard", HP: 50, Mana: 500, Note: "caster loses 1 HP before each of its turns"},
		},
		Search: SearchDef{Seed: 12345},
	}
}

func (c *DuelConfig) Validate() error {
	if len(c.Presets) == 0 {
		return fmt.Errorf("%w: no presets", ErrInvalidConfig)
	}
	seen := map[string]bool{}
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("%w: preset %d has no name", ErrInvalidConfig, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate preset %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true
		switch NormalizeName(p.Difficulty) {
		case "", "normal", "hard":
		default:
			return fmt.Errorf("%w: preset %q: unknown difficulty %q", ErrInvalidConfig, p.Name, p.Difficulty)
		}
		if p.HP <= 0 {
			return fmt.Errorf("%w: preset %q: hp must be positive", ErrInvalidConfig, p.Name)
		}
		if p.Mana < 0 {
			return fmt.Errorf("%w: preset %q: mana must not be negative", ErrInvalidConfig, p.Name)
		}
	}
	if c.Search.Rollouts < 0 || c.Search.MaxCost < 0 || c.Search.Timeout < 0 {
		return fmt.Errorf("%w: search limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NormalizeName folds a user supplied keyword such as a difficulty for
// comparison.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Preset looks a preset up by name.
func (c *DuelConfig) Preset(name string) (PresetDef, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return PresetDef{}, false
}
