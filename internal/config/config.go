package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the base URL of the plant processing service.
	APIBaseURL string
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		APIBaseURL: getEnv("TOPOGRAFIA_API_URL", "http://localhost:8000"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
