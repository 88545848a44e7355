package observability

import (
	"strings"

	"github.com/propworks/rendition/internal/config"
)

// Config holds observability configuration derived from application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "rendition"
	}

	return Config{
		ServiceName: serviceName,
		Environment: strings.TrimSpace(cfg.Environment),
		Version:     strings.TrimSpace(cfg.AppVersion),
		LogLevel:    cfg.Logger.Level,
		LogFormat:   cfg.Logger.Format,
	}
}

func (c Config) Debug() bool {
	return c.Environment != "production"
}
