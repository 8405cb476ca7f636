package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/worklog-api/internal/constants"
)

// Development fallbacks for the signing secrets. Release mode refuses them.
const (
	defaultSessionSecret = "default-secret-key-change-me"
	defaultJWTSecret     = "default-jwt-secret-change-me"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SessionStore  string
	RedisHost     string
	RedisPort     string
	SessionSecret string

	JWTSecret string
	JWTTTL    time.Duration

	OpenAIAPIKey string
	OpenAIModel  string

	AMQPURL      string
	AMQPExchange string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      driver,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", defaultPort),
		DBUser:        getEnv("DB_USER", "worklog"),
		DBPassword:    getEnv("DB_PASSWORD", "worklogpassword"),
		DBName:        getEnv("DB_NAME", "worklog"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "redis")),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:        getDuration("JWT_TTL", constants.DefaultTokenTTL),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		AMQPURL:       getEnv("AMQP_URL", ""),
		AMQPExchange:  getEnv("AMQP_EXCHANGE", "worklog.events"),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be mysql or postgres, got %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "redis", "cookie":
	default:
		return fmt.Errorf("SESSION_STORE must be redis or cookie, got %q", c.SessionStore)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if err := checkSecret("JWT_SECRET", c.JWTSecret, defaultJWTSecret, c.IsRelease()); err != nil {
		return err
	}
	return checkSecret("SESSION_SECRET", c.SessionSecret, defaultSessionSecret, c.IsRelease())
}

// checkSecret rejects an empty secret, and the built-in fallback in release mode.
func checkSecret(name, value, fallback string, release bool) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	if release && value == fallback {
		return fmt.Errorf("%s must be set in release mode", name)
	}
	return nil
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}
