package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
)

const (
	StateBackendFile  = "file"
	StateBackendRedis = "redis"
)

type Config struct {
	TelegramToken string
	Google        GoogleConfig
	State         StateConfig
	Logger        LoggerConfig
}

type GoogleConfig struct {
	ServiceAccountEmail string
	ServiceAccountKey   string
}

type StateConfig struct {
	Backend   string
	FilePath  string
	RedisHost string
	RedisPort string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
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
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Google: GoogleConfig{
			ServiceAccountEmail: os.Getenv("G_SERVICE_ACCOUNT_EMAIL"),
			// .env files carry the PEM key with literal \n sequences
			ServiceAccountKey: strings.ReplaceAll(os.Getenv("G_SERVICE_ACCOUNT_PRIVATE_KEY"), `\n`, "\n"),
		},
		State: StateConfig{
			Backend:   getEnvOrDefault("STATE_BACKEND", StateBackendFile),
			FilePath:  getEnvOrDefault("USER_STATES_FILE", "user-states.json"),
			RedisHost: getEnvOrDefault("REDIS_HOST", "localhost"),
			RedisPort: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.Google.ServiceAccountEmail == "" {
		return nil, fmt.Errorf("G_SERVICE_ACCOUNT_EMAIL is required")
	}
	if cfg.Google.ServiceAccountKey == "" {
		return nil, fmt.Errorf("G_SERVICE_ACCOUNT_PRIVATE_KEY is required")
	}
	if cfg.State.Backend != StateBackendFile && cfg.State.Backend != StateBackendRedis {
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.State.Backend)
	}

	return cfg, nil
}
