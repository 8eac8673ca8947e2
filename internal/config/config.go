package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"fxsema/internal/semtype"
)

// Config is the optional analyzer policy file (fxsema.toml).
type Config struct {
	Promotion PromotionConfig `toml:"promotion"`
}

// PromotionConfig gates the deliberately permissive type-promotion
// rules kept for legacy shader corpora.
type PromotionConfig struct {
	// StrictWidths rejects cross-width vector/matrix promotion.
	StrictWidths bool `toml:"strict_widths"`
}

// Default returns the permissive default configuration.
func Default() *Config {
	return &Config{}
}

// Load reads a TOML policy file. A missing file is not an error: the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Policy converts the configuration into promotion rules.
func (c *Config) Policy() semtype.Policy {
	return semtype.Policy{StrictWidths: c.Promotion.StrictWidths}
}
