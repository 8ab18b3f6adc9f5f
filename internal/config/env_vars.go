package config

import (
	"strings"
)

// DefaultListenAddr keeps the admin UI on the loopback interface unless
// PORT says otherwise
const DefaultListenAddr = "127.0.0.1:8080"

type EnvVars struct {
	Port     string `env:"PORT" envDefault:"127.0.0.1:8080"`
	AppName  string `env:"APP_NAME" envDefault:"Ular Tangga Admin"`
	Env      string `env:"ENV" envDefault:"DEV"`
	Locale   string `env:"LOCALE" envDefault:"en"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var _ EnvConfig = EnvVars{}

// GetPort returns the listen address. A bare port ("9090") listens on all
// interfaces; host:port and :port forms are used as given.
func (e EnvVars) GetPort() string {
	port := strings.TrimSpace(e.Port)
	if port == "" {
		return DefaultListenAddr
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

func (e EnvVars) GetLocale() string {
	return e.Locale
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}
