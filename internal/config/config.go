package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server
	HTTPAddr     string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Auth
	APIAuthToken string // static bearer token; empty disables auth

	// Gemini API
	GeminiAPIKey      string
	GeminiAPIEndpoint string // if set, overrides the default Gemini API base URL
	GeminiModelText   string // scene prompt generation, e.g. gemini-2.5-flash
	GeminiModelVision string // image style analysis, e.g. gemini-2.5-flash
	GeminiModelImage  string // image generation, e.g. imagen-4.0-generate-001
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 120*time.Second),

		APIAuthToken: getEnv("API_AUTH_TOKEN", ""),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiAPIEndpoint: getEnv("GEMINI_API_ENDPOINT", ""),
		GeminiModelText:   getEnv("GEMINI_MODEL_TEXT", "gemini-2.5-flash"),
		GeminiModelVision: getEnv("GEMINI_MODEL_VISION", "gemini-2.5-flash"),
		GeminiModelImage:  getEnv("GEMINI_MODEL_IMAGE", "imagen-4.0-generate-001"),
	}
}

// Validate checks that required configuration is present. The Gemini API key
// is the only hard requirement; without it no operation can run, so startup
// fails immediately rather than at first request.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
