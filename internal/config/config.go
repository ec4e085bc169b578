package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Kabachel/FeedingKittiesBot/internal/logger"
)

type Config struct {
	TelegramToken string
	ResetSchedule string
	DB            DBConfig
	Logger        LoggerConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
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
		// Daily feed counter reset, midnight in the process timezone.
		ResetSchedule: getEnvOrDefault("RESET_SCHEDULE", "0 0 * * *"),
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "feeding_kitties"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	return cfg, nil
}
