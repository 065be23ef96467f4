package imagegate

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Default dimension bounds (0 = unbounded)
	MinWidth  int `env:"IMAGEGATE_MIN_WIDTH,default:2"`
	MinHeight int `env:"IMAGEGATE_MIN_HEIGHT,default:2"`
	MaxWidth  int `env:"IMAGEGATE_MAX_WIDTH,default:0"`
	MaxHeight int `env:"IMAGEGATE_MAX_HEIGHT,default:0"`

	// Metadata scan behavior
	VerboseScan bool `env:"IMAGEGATE_VERBOSE_SCAN,default:false"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Settings converts the config into a settings snapshot.
func (c *Config) Settings() Settings {
	return Settings{
		MinWidth:  c.MinWidth,
		MinHeight: c.MinHeight,
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
	}
}

// Options returns the validator options implied by the config.
func (c *Config) Options() []Option {
	opts := []Option{WithSettings(c.Settings())}
	if c.VerboseScan {
		opts = append(opts, WithVerboseScan())
	}
	return opts
}
