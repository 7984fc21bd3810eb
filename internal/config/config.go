package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Backend ("Grooming IS") REST API.
	GroomAPIURL     string
	GroomAPITimeout time.Duration

	// Client-side session policy. Sessions older than SessionTTL are
	// discarded on the next page load regardless of token validity.
	SessionTTL    time.Duration
	SessionCookie string

	// Optional Redis-backed session store. Empty RedisAddr selects the
	// in-process store.
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GroomAPIURL:     getEnv("GROOM_API_URL", "http://127.0.0.1:8000"),
		GroomAPITimeout: getEnvAsDuration("GROOM_API_TIMEOUT", 15*time.Second),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 3*time.Hour),
		SessionCookie:   getEnv("SESSION_COOKIE", "groom_sid"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisTLS:        getEnvAsBool("REDIS_TLS", false),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
