package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the console client and the development
// stub server.
type Config struct {
	API         APIConfig
	Stub        StubConfig
	Environment string
}

// APIConfig holds settings for reaching the platform API.
type APIConfig struct {
	BaseURL string
	// Token is the bearer token for the current session. In development it
	// can be supplied directly through the environment; the console also
	// accepts one on the command line.
	Token string
}

// StubConfig holds settings for the development fixture server.
type StubConfig struct {
	Port          string
	JWTSecret     string
	JWTExpiration int // in hours
	DatabaseDSN   string
	AdminEmail    string
	AdminPassword string
}

// LoadConfig creates a new Config instance with values from environment
// variables, loading a .env file first when one is present.
func LoadConfig() *Config {
	// Try to load .env file for local development
	_ = godotenv.Load()

	return &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			Token:   getEnv("API_TOKEN", ""),
		},
		Stub: StubConfig{
			Port:          getEnv("STUB_PORT", "8080"),
			JWTSecret:     getEnv("STUB_JWT_SECRET", "netvest_development_jwt_secret"),
			JWTExpiration: getEnvInt("STUB_JWT_EXPIRATION", 24),
			DatabaseDSN:   getEnv("STUB_DATABASE_DSN", "file::memory:?cache=shared"),
			AdminEmail:    getEnv("STUB_ADMIN_EMAIL", "admin@netvest.dev"),
			AdminPassword: getEnv("STUB_ADMIN_PASSWORD", "admin1234"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns a
// default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}
