package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// All sensitive values are loaded from the environment (.env in development).
type Config struct {
	// Server configuration
	Environment    string
	ServerPort     string
	AllowedOrigins []string
	TrustedProxies []string
	RequestTimeout time.Duration

	// DB configuration
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Identity
	JWTSecret string

	// Click tracking pipeline
	GeoIPDBPath    string        // Path to a GeoLite2-City .mmdb file, empty disables lookups
	ClickWorkers   int           // Background workers recording clicks
	ClickQueueSize int           // Buffered clicks waiting for a worker
	ClickTimeout   time.Duration // Upper bound for one click recording

	// Messaging
	KafkaBrokers    []string
	KafkaClickTopic string

	// Maintenance
	ReconcileSchedule string // cron expression for counter reconciliation

	RateLimitPerMinute int // Rate limit per IP address
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerPort:     getEnv("SERVER_PORT", "8081"),
		AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", nil),
		TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES", nil),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT_SECONDS", 10),

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "urlshortener"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsDuration("CACHE_TTL_SECONDS", 60),

		JWTSecret: getEnv("JWT_SECRET", ""),

		GeoIPDBPath:    getEnv("GEOIP_DB_PATH", ""),
		ClickWorkers:   getEnvAsInt("CLICK_WORKERS", 4),
		ClickQueueSize: getEnvAsInt("CLICK_QUEUE_SIZE", 1024),
		ClickTimeout:   getEnvAsDuration("CLICK_TIMEOUT_SECONDS", 5),

		KafkaBrokers:    getEnvAsSlice("KAFKA_BROKERS", nil),
		KafkaClickTopic: getEnv("KAFKA_CLICK_TOPIC", "link.clicks"),

		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "0 * * * *"),

		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Environment == "production" && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.ClickWorkers < 1 {
		return fmt.Errorf("CLICK_WORKERS must be at least 1, got %d", c.ClickWorkers)
	}

	if c.ClickQueueSize < 1 {
		return fmt.Errorf("CLICK_QUEUE_SIZE must be at least 1, got %d", c.ClickQueueSize)
	}

	if c.ClickTimeout <= 0 {
		return fmt.Errorf("CLICK_TIMEOUT_SECONDS must be positive")
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1, got %d", c.RateLimitPerMinute)
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaClickTopic == "" {
		return fmt.Errorf("KAFKA_CLICK_TOPIC is required when KAFKA_BROKERS is set")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration reads a number of seconds
func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

// getEnvAsSlice reads a comma separated list, dropping blanks
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var parts []string
	for _, p := range strings.Split(valueStr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
