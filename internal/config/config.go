package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Authentication configuration
	Auth AuthConfig

	// Comment box configuration
	Comments CommentsConfig

	// Write throttling
	RateLimit RateLimitConfig

	// After-insert notifications
	Notify NotifyConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// AuthConfig holds bearer token settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CommentsConfig holds comment box settings
type CommentsConfig struct {
	SiteID int64
	// Limit is the per-parent comment cap.
	Limit int
	// LimitOverrides maps a content type to its own cap.
	LimitOverrides map[string]int
	AuthorCacheTTL time.Duration
}

// RateLimitConfig holds per-user write throttling settings
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// NotifyConfig holds after-insert notification settings
type NotifyConfig struct {
	URLs    []string
	Timeout time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// DefaultCommentLimit is the per-parent cap used when COMMENTS_LIMIT is unset.
const DefaultCommentLimit = 20

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			RequestTimeout:  getDurationEnv("SERVER_REQUEST_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "admin_edit_comment"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getDurationEnv("JWT_TTL", 12*time.Hour),
		},
		Comments: CommentsConfig{
			SiteID:         getInt64Env("SITE_ID", 1),
			Limit:          getIntEnv("COMMENTS_LIMIT", DefaultCommentLimit),
			LimitOverrides: getIntMapEnv("COMMENTS_LIMIT_OVERRIDES"),
			AuthorCacheTTL: getDurationEnv("AUTHOR_CACHE_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 60),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 10),
		},
		Notify: NotifyConfig{
			URLs:    getListEnv("NOTIFY_URLS"),
			Timeout: getDurationEnv("NOTIFY_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Comments.Limit < 1 {
		return fmt.Errorf("COMMENTS_LIMIT must be positive")
	}
	for postType, limit := range c.Comments.LimitOverrides {
		if limit < 1 {
			return fmt.Errorf("COMMENTS_LIMIT_OVERRIDES: limit for %q must be positive", postType)
		}
	}
	if c.RateLimit.RequestsPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// LimitFor returns the comment cap for a content type
func (c *CommentsConfig) LimitFor(postType string) int {
	if limit, ok := c.LimitOverrides[postType]; ok {
		return limit
	}
	if c.Limit < 1 {
		return DefaultCommentLimit
	}
	return c.Limit
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping empty items
func getListEnv(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getIntMapEnv parses "type=limit" pairs, e.g. "post=30,page=10"
func getIntMapEnv(key string) map[string]int {
	result := make(map[string]int)
	for _, pair := range getListEnv(key) {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			result[strings.TrimSpace(name)] = intVal
		}
	}
	return result
}
