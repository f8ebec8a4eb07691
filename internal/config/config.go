package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Telegram
	TelegramToken string
	BotURL        string
	WebhookSecret string
	Environment   string
	ServerPort    string

	// Storage
	StoreDriver    string // sql, redis or memory
	DatabaseType   string // sqlite, postgres or mysql
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	RedisURL       string

	// Game runtime
	Workers    int
	MaxRetries int
	RateLimit  int
	RateWindow time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_API_KEY"),
		BotURL:         os.Getenv("BOT_URL"),
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		Environment:    getEnv("APP_ENV", "development"),
		ServerPort:     getEnv("PORT", "8080"),
		StoreDriver:    getEnv("STORE_DRIVER", "sql"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./wordduel.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		Workers:        getEnvInt("WORKERS", 16),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		RateLimit:      getEnvInt("RATE_LIMIT", 30),
		RateWindow:     getEnvDuration("RATE_WINDOW", 10*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}
	if cfg.WebhookSecret == "" {
		cfg.WebhookSecret = cfg.TelegramToken
	}
	return cfg
}

// IsProduction reports whether the bot should run behind a webhook
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_API_KEY is required")
	}
	if c.IsProduction() && c.BotURL == "" {
		return fmt.Errorf("BOT_URL is required in production")
	}
	switch strings.ToLower(c.StoreDriver) {
	case "sql", "redis", "memory":
	default:
		return fmt.Errorf("unsupported store driver: %s", c.StoreDriver)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
