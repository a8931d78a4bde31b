package config

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60, cfg.OpenAITimeout)
	assert.Equal(t, "localhost", cfg.QdrantHost)
	assert.Equal(t, 6334, cfg.QdrantPort)
	assert.False(t, cfg.QdrantUseTLS)
	assert.Equal(t, "email-rag-index", cfg.QdrantCollection)
	assert.Equal(t, "default-secret-change-in-production", cfg.JWTSecret)
	assert.Equal(t, 168, cfg.TokenExpiryHours)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	_ = os.Setenv("PORT", "9090")
	_ = os.Setenv("VERSION", "2.0.0")
	_ = os.Setenv("LOG_LEVEL", "debug")
	_ = os.Setenv("OPENAI_API_KEY", "sk-test-123")
	_ = os.Setenv("OPENAI_TIMEOUT", "120")
	_ = os.Setenv("QDRANT_HOST", "qdrant.example.com")
	_ = os.Setenv("QDRANT_PORT", "7443")
	_ = os.Setenv("QDRANT_API_KEY", "qd-key")
	_ = os.Setenv("QDRANT_USE_TLS", "true")
	_ = os.Setenv("QDRANT_COLLECTION", "custom-index")
	_ = os.Setenv("JWT_SECRET", "super-secret")
	_ = os.Setenv("ADMIN_PASSWORD_HASH", "$2a$12$hash")
	_ = os.Setenv("TOKEN_EXPIRY_HOURS", "24")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "2.0.0", cfg.Version)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sk-test-123", cfg.OpenAIKey)
	assert.Equal(t, 120, cfg.OpenAITimeout)
	assert.Equal(t, "qdrant.example.com", cfg.QdrantHost)
	assert.Equal(t, 7443, cfg.QdrantPort)
	assert.Equal(t, "qd-key", cfg.QdrantAPIKey)
	assert.True(t, cfg.QdrantUseTLS)
	assert.Equal(t, "custom-index", cfg.QdrantCollection)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, "$2a$12$hash", cfg.AdminPassword)
	assert.Equal(t, 24, cfg.TokenExpiryHours)
}

func TestLoad_InvalidNumericValuesFallBack(t *testing.T) {
	clearEnv(t)
	_ = os.Setenv("OPENAI_TIMEOUT", "not-a-number")
	_ = os.Setenv("QDRANT_PORT", "")
	_ = os.Setenv("QDRANT_USE_TLS", "maybe")

	cfg := Load()

	assert.Equal(t, 60, cfg.OpenAITimeout)
	assert.Equal(t, 6334, cfg.QdrantPort)
	assert.False(t, cfg.QdrantUseTLS)
}

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "info level", logLevel: "info", expected: zerolog.InfoLevel},
		{name: "warn level", logLevel: "warn", expected: zerolog.WarnLevel},
		{name: "invalid level falls back to info", logLevel: "nonsense", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel, Version: "1.0.0"}
			logger := cfg.SetupLogger()
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "VERSION", "LOG_LEVEL", "OPENAI_API_KEY", "OPENAI_TIMEOUT",
		"QDRANT_HOST", "QDRANT_PORT", "QDRANT_API_KEY", "QDRANT_USE_TLS",
		"QDRANT_COLLECTION", "JWT_SECRET", "ADMIN_PASSWORD_HASH", "TOKEN_EXPIRY_HOURS",
	} {
		_ = os.Unsetenv(key)
	}
}
