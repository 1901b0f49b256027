package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/medtrack/diabetes-monitor/internal/logger"
)

type Config struct {
	DB     DBConfig
	Logger LoggerConfig
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName   string `envconfig:"DB_NAME" default:"diabetes_monitor"`
	// Pool bounds: at most MaxOpenConns concurrent connections, MaxIdleConns
	// kept warm.
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"1"`
}

type LoggerConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	OutputPath string `envconfig:"LOG_OUTPUT" default:"stdout"`
	Format     string `envconfig:"LOG_FORMAT" default:"json"`
}

// ParsedLevel converts the configured level string to a logger level.
func (c LoggerConfig) ParsedLevel() logger.LogLevel {
	switch strings.ToLower(c.Level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if cfg.DB.MaxOpenConns < 1 {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns < 1 || cfg.DB.MaxIdleConns > cfg.DB.MaxOpenConns {
		return nil, fmt.Errorf("DB_MAX_IDLE_CONNS must be between 1 and DB_MAX_OPEN_CONNS")
	}
	return &cfg, nil
}
