package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	StatusPort    int           `mapstructure:"status_port"`
	MaxSessions   int64         `mapstructure:"max_sessions"`
	LoginAttempts int           `mapstructure:"login_attempts"`
	LoginTimeout  time.Duration `mapstructure:"login_timeout"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
	DefaultRoom   string        `mapstructure:"default_room"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8888)
	// status_port 0 keeps the HTTP status endpoint off
	v.SetDefault("status_port", 0)
	v.SetDefault("max_sessions", 50)
	v.SetDefault("login_attempts", 3)
	v.SetDefault("login_timeout", "30s")
	v.SetDefault("shutdown_grace", "30s")
	v.SetDefault("default_room", "general")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
