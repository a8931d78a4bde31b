package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port             string
	Version          string
	LogLevel         string
	OpenAIKey        string
	OpenAITimeout    int    // OpenAI API timeout in seconds
	QdrantHost       string // Qdrant gRPC host
	QdrantPort       int    // Qdrant gRPC port
	QdrantAPIKey     string
	QdrantUseTLS     bool
	QdrantCollection string // Vector collection holding the email knowledge base
	JWTSecret        string // HMAC secret for session tokens
	AdminPassword    string // bcrypt hash of the single admin password
	TokenExpiryHours int    // Session token lifetime
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		Version:          getEnv("VERSION", "1.0.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAITimeout:    getEnvInt("OPENAI_TIMEOUT", 60),
		QdrantHost:       getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:       getEnvInt("QDRANT_PORT", 6334),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantUseTLS:     getEnvBool("QDRANT_USE_TLS", false),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "email-rag-index"),
		JWTSecret:        getEnv("JWT_SECRET", "default-secret-change-in-production"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD_HASH"),
		TokenExpiryHours: getEnvInt("TOKEN_EXPIRY_HOURS", 168), // 7 days
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "emailogan").
		Str("version", c.Version).
		Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}
