package config

import "strings"

type EnvVars struct {
	AppName  string `env:"APP_NAME, default=Session Control"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Env      string `env:"ENV, default=DEV"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

// GetLogLevel returns a zerolog level name ("debug", "info", ...).
func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(e.LogLevel)
}

func (e EnvVars) GetEnv() string {
	return e.Env
}
