package config

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
)

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns defaults if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// Marshal encodes the effective config in the config file format.
func (c *Config) Marshal() ([]byte, error) {
	fetch := c.Fetch
	raw := rawConfig{
		RootDir:           c.RootDir,
		Host:              c.Host,
		Port:              c.Port,
		StaticDir:         c.StaticDir,
		Exclude:           c.Exclude,
		Fetch:             &fetch,
		BranchConcurrency: c.BranchConcurrency,
		Theme:             c.Theme,
		Keepalive: rawKeepalive{
			Interval: c.Keepalive.Interval.String(),
			Timeout:  c.Keepalive.Timeout.String(),
		},
	}
	data, err := toml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
