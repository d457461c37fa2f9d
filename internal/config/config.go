package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET" required:"true"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET" required:"true"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Redis Cache
	RedisURL      string        `env:"REDIS_URL" default:"redis://redis:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" default:"5m"`

	// External APIs
	TMDBAPIURL   string `env:"TMDB_API_URL" default:"https://api.themoviedb.org/3"`
	TMDBAPIKey   string `env:"TMDB_API_KEY"`
	TMDBMaxPages int    `env:"TMDB_MAX_PAGES" default:"5"`

	// Rate limiting
	FixedWindowSize     time.Duration `env:"FIXED_WINDOW_SIZE" default:"1m"`
	FixedWindowMax      int           `env:"FIXED_WINDOW_MAX" default:"120"`
	TokenBucketCapacity int           `env:"TOKEN_BUCKET_CAPACITY" default:"20"`
	TokenBucketRefill   float64       `env:"TOKEN_BUCKET_REFILL" default:"10"`

	// Development
	LogLevel  string `env:"LOG_LEVEL" default:"debug"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Try to load .env file from project root (adjust path as needed)
	err := godotenv.Load(".env")
	if err != nil {
		// If .env file doesn't exist, that's OK - we can still use system env vars
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// Ports
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTAccessSecret, "JWT_ACCESS_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&config.JWTRefreshSecret, "JWT_REFRESH_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", "redis://redis:6379"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	// External APIs
	if err := loadEnvString(&config.TMDBAPIURL, "TMDB_API_URL", "https://api.themoviedb.org/3"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.TMDBAPIKey, "TMDB_API_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.TMDBMaxPages, "TMDB_MAX_PAGES", 5); err != nil {
		return nil, err
	}

	// Rate limiting
	if err := loadEnvDuration(&config.FixedWindowSize, "FIXED_WINDOW_SIZE", time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.FixedWindowMax, "FIXED_WINDOW_MAX", 120); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.TokenBucketCapacity, "TOKEN_BUCKET_CAPACITY", 20); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.TokenBucketRefill, "TOKEN_BUCKET_REFILL", 10); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	// Secrets should be at least 32 characters for security
	if len(c.JWTAccessSecret) < 32 {
		errors = append(errors, "JWT_ACCESS_SECRET should be at least 32 characters long")
	}
	if len(c.JWTRefreshSecret) < 32 {
		errors = append(errors, "JWT_REFRESH_SECRET should be at least 32 characters long")
	}

	if c.TMDBMaxPages < 1 {
		errors = append(errors, "TMDB_MAX_PAGES must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
