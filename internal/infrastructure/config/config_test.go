package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"RFQ_APP_NAME", "RFQ_APP_ENV", "RFQ_APP_PORT", "PORT",
		"RFQ_STORE_BACKEND", "RFQ_STORAGE_BACKEND", "RFQ_STORAGE_BUCKET",
		"RFQ_DYNAMODB_REGION", "AWS_REGION", "RFQ_DYNAMODB_ENDPOINT", "DYNAMODB_ENDPOINT",
		"RFQ_DYNAMODB_ACCESS_KEY", "AWS_ACCESS_KEY_ID", "RFQ_DYNAMODB_SECRET_KEY", "AWS_SECRET_ACCESS_KEY",
		"RFQ_TABLES_QUOTES", "RFQ_JWT_SECRET", "RFQ_JWT_ACCESS_TOKEN_EXPIRATION",
		"RFQ_METRICS_ENABLED", "RFQ_HTTP_MAX_UPLOAD_BYTES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "milling-aggregator", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, BackendDynamoDB, cfg.Store.Backend)
		assert.Equal(t, BackendMemory, cfg.Storage.Backend)
		assert.Equal(t, "us-east-1", cfg.DynamoDB.Region)
		assert.Equal(t, "local", cfg.DynamoDB.AccessKey)
		assert.Equal(t, "rfqs", cfg.Tables.RFQs)
		assert.Equal(t, "users", cfg.Tables.Users)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "milling-aggregator", cfg.JWT.Issuer)
		assert.True(t, cfg.Metrics.Enabled)
		assert.True(t, cfg.IsDevelopment())
		assert.NotEmpty(t, cfg.JWTSecret())
	})

	t.Run("loads values from environment variables with RFQ prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RFQ_APP_PORT", "9000")
		t.Setenv("RFQ_STORE_BACKEND", "MEMORY")
		t.Setenv("RFQ_TABLES_QUOTES", "dev-quotes")
		t.Setenv("RFQ_JWT_ACCESS_TOKEN_EXPIRATION", "2h")
		t.Setenv("RFQ_METRICS_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, BackendMemory, cfg.Store.Backend)
		assert.Equal(t, "dev-quotes", cfg.Tables.Quotes)
		assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpiration)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("falls back to plain AWS variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AWS_REGION", "eu-central-1")
		t.Setenv("DYNAMODB_ENDPOINT", "http://dynamodb:8000")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "eu-central-1", cfg.DynamoDB.Region)
		assert.Equal(t, "http://dynamodb:8000", cfg.DynamoDB.Endpoint)
		assert.Equal(t, "eu-central-1", cfg.Storage.Region)
	})

	t.Run("rejects unknown store backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RFQ_STORE_BACKEND", "postgres")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.backend")
	})

	t.Run("rejects unknown storage backend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RFQ_STORAGE_BACKEND", "gridfs")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.backend")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("requires a strong jwt secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RFQ_APP_ENV", "production")
		t.Setenv("RFQ_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("refuses the memory store", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RFQ_APP_ENV", "production")
		t.Setenv("RFQ_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("RFQ_STORE_BACKEND", "memory")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not allowed in production")
	})

	t.Run("accepts a complete production config", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RFQ_APP_ENV", "production")
		t.Setenv("RFQ_JWT_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.IsDevelopment())
	})
}
