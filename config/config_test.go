package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "culina")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "culina_test")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Test database configuration
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "culina", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "culina_test", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "DB_SSL_MODE", "DB_DRIVER", "REDIS_URL", "REDIS_HOST", "SERVER_PORT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "culina", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigMissingSecret(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoadConfigReadsSecretsInProduction(t *testing.T) {
	dir := t.TempDir()
	write := func(name, value string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
	}
	write("jwt_secret", "from-secret")
	write("db_password", "pw")
	write("llm_api_key", "sk-test")

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_URL", "redis://cache:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "pw", cfg.DBPassword)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
}

func TestValidateConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CI", "true")
	err := ValidateConfig(&Config{JWTSecret: "x", ServerPort: "8080", DBDriver: "mysql"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported driver"))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())

	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestPresignedURLs(t *testing.T) {
	s3cfg := NewStaticS3Config("culina-images", "us-east-1", "AKIDEXAMPLE", "secret")
	ctx := context.Background()

	get, err := s3cfg.GeneratePresignedURL(ctx, "ingredients/u1/egg/abc", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, get, "culina-images")
	assert.Contains(t, get, "ingredients/u1/egg/abc")
	assert.Contains(t, get, "X-Amz-Expires=900")

	put, err := s3cfg.GeneratePresignedUploadURL(ctx, "ingredients/u1/egg/abc", "image/jpeg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, put, "X-Amz-Signature=")
}

func TestNewS3ConfigRequiresBucket(t *testing.T) {
	_, err := NewS3Config(context.Background(), &Config{})
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
