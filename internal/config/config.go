package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLocale() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
}

// New parses the process environment into a Config. Missing variables fall
// back to their defaults, so New only fails on malformed values.
func New() (Config, error) {
	c := mainConfig{}
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config New] parse env: %w", err)
	}
	return c, nil
}
