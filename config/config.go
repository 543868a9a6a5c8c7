package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string
	// MigrationsDir holds the SQL migrations applied to postgres
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// LLM configuration
	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string

	// Object storage configuration
	S3BucketName string
	AWSRegion    string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// PostgresDSN builds the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether any redis endpoint has been configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadFrom(cfg, envOnly)
	case Development, Test:
		// A missing .env file is fine, the process environment still applies.
		_ = godotenv.Load()
		loadFrom(cfg, envThenSecret)
	case Production:
		loadFrom(cfg, secretThenEnv)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// lookupFunc resolves a setting from its environment variable name and secret file name
type lookupFunc func(envKey, secretName string) string

func envOnly(envKey, _ string) string {
	return os.Getenv(envKey)
}

func envThenSecret(envKey, secretName string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return readSecret(secretName)
}

func secretThenEnv(envKey, secretName string) string {
	if v := readSecret(secretName); v != "" {
		return v
	}
	return os.Getenv(envKey)
}

func loadFrom(cfg *Config, lookup lookupFunc) {
	get := func(envKey, secretName, fallback string) string {
		if v := lookup(envKey, secretName); v != "" {
			return v
		}
		return fallback
	}

	cfg.ServerPort = get("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = get("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.CORSOrigins = splitList(get("CORS_ORIGINS", "cors_origins", "http://localhost:8081,http://localhost:19006"))

	cfg.DBDriver = get("DB_DRIVER", "db_driver", "postgres")
	cfg.DBHost = get("DB_HOST", "db_host", "localhost")
	cfg.DBPort = get("DB_PORT", "db_port", "5432")
	cfg.DBUser = get("DB_USER", "db_user", "postgres")
	cfg.DBPassword = get("DB_PASSWORD", "db_password", "")
	cfg.DBName = get("DB_NAME", "db_name", "culina")
	cfg.DBSSLMode = get("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.SQLitePath = get("SQLITE_PATH", "sqlite_path", "culina.db")
	cfg.MigrationsDir = get("MIGRATIONS_DIR", "migrations_dir", "migrations")

	cfg.RedisHost = get("REDIS_HOST", "redis_host", "")
	cfg.RedisPort = get("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = get("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = get("REDIS_URL", "redis_url", "")
	cfg.RedisDB, _ = strconv.Atoi(get("REDIS_DB", "redis_db", "0"))

	cfg.JWTSecret = get("JWT_SECRET", "jwt_secret", "")

	cfg.LLMAPIKey = get("LLM_API_KEY", "llm_api_key", "")
	cfg.LLMAPIURL = get("LLM_API_URL", "llm_api_url", "https://api.openai.com/v1/chat/completions")
	cfg.LLMModel = get("LLM_MODEL", "llm_model", "gpt-4o-mini")

	cfg.S3BucketName = get("S3_BUCKET_NAME", "s3_bucket_name", "")
	cfg.AWSRegion = get("AWS_REGION", "aws_region", "us-east-1")

	cfg.LogLevel = get("LOG_LEVEL", "log_level", "info")
	cfg.LogFormat = get("LOG_FORMAT", "log_format", "json")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
