package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	Database DatabaseConfig

	// CatalogPath overrides the bundled catalog when set
	CatalogPath string
	// ProgressDelayScale multiplies booking progress delays, 0 disables them
	ProgressDelayScale float64

	Workers       int
	UserQueueSize int

	RateLimitPerSecond float64
	RateLimitBurst     int

	SessionIdleTTL time.Duration

	// ReportsChatURL is the report analysis endpoint, chat is disabled when empty
	ReportsChatURL     string
	ReportsChatTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "healthbot"),
			User:     getEnv("DB_USER", "healthbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		ReportsChatURL: os.Getenv("REPORTS_CHAT_URL"),
	}

	var err error
	if cfg.ProgressDelayScale, err = getEnvFloat("PROGRESS_DELAY_SCALE", 1); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("WORKERS", 64); err != nil {
		return nil, err
	}
	if cfg.UserQueueSize, err = getEnvInt("USER_QUEUE_SIZE", 8); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerSecond, err = getEnvFloat("RATE_LIMIT_PER_SECOND", 2); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getEnvDuration("SESSION_IDLE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReportsChatTimeout, err = getEnvDuration("REPORTS_CHAT_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.ProgressDelayScale < 0 {
		return nil, fmt.Errorf("PROGRESS_DELAY_SCALE must not be negative")
	}
	if cfg.Workers < 1 || cfg.UserQueueSize < 1 {
		return nil, fmt.Errorf("WORKERS and USER_QUEUE_SIZE must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
