package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config interface {
	EnvConfig
	ClientConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Client
	Storage
}

// New reads the configuration from the process environment.
func New(ctx context.Context) (Config, error) {
	return Load(ctx, envconfig.OsLookuper())
}

// Load reads the configuration through the given lookuper, applying defaults
// for anything that is not set.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var c mainConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &c,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("envconfig.ProcessWith: %w", err)
	}
	if err := c.Storage.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
