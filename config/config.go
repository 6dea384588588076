package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBPath      string
	AutoMigrate bool

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	ActivationTokenTTL time.Duration

	// Public base URL used to build activation links
	AppURL string

	// Mail configuration
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	EmailFrom     string
	EmailFromName string

	// Object storage
	S3BucketName string
	AWSRegion    string

	// Logging
	LogLevel  string
	LogFormat string
}

const defaultJWTSecret = "insecure-development-secret"

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets for sensitive values and to development defaults.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	var errs []string
	duration := func(key string, def time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid duration %q", key, raw))
			return def
		}
		return d
	}
	integer := func(key string, def int) int {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid integer %q", key, raw))
			return def
		}
		return n
	}

	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("SERVER_PORT", "8000")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getSecret("DB_USER", "db_user", "postgres")
	cfg.DBPassword = getSecret("DB_PASSWORD", "db_password", "")
	cfg.DBName = getEnv("DB_NAME", "recipeshare")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.DBPath = getEnv("DB_PATH", "recipeshare.db")
	cfg.AutoMigrate = getEnv("AUTO_MIGRATE", "true") == "true"

	cfg.RedisURL = getSecret("REDIS_URL", "redis_url", "")
	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getSecret("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisDB = integer("REDIS_DB", 0)

	cfg.JWTSecret = getSecret("JWT_SECRET", "jwt_secret", "")
	if cfg.JWTSecret == "" && env != Production {
		cfg.JWTSecret = defaultJWTSecret
	}
	cfg.AccessTokenTTL = duration("ACCESS_TOKEN_TTL", 15*time.Minute)
	cfg.RefreshTokenTTL = duration("REFRESH_TOKEN_TTL", 24*time.Hour)
	cfg.ActivationTokenTTL = duration("ACTIVATION_TOKEN_TTL", 72*time.Hour)

	cfg.AppURL = strings.TrimRight(getEnv("APP_URL", "http://localhost:8000"), "/")

	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort = integer("SMTP_PORT", 587)
	cfg.SMTPUsername = getSecret("SMTP_USERNAME", "smtp_username", "")
	cfg.SMTPPassword = getSecret("SMTP_PASSWORD", "smtp_password", "")
	cfg.EmailFrom = getEnv("EMAIL_FROM", "no-reply@recipeshare.local")
	cfg.EmailFromName = getEnv("EMAIL_FROM_NAME", "RecipeShare")

	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "")
	cfg.AWSRegion = getEnv("AWS_REGION", "")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to load configuration:\n%s", strings.Join(errs, "\n"))
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN returns the connection string for the configured PostgreSQL server.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// PostgresURL returns the same connection as a URL, as expected by lib/pq.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// getSecret prefers the environment variable and falls back to a Docker secret file.
func getSecret(envKey, secretName, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
