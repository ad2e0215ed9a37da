package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Extract  ExtractConfig
	Fallback FallbackConfig
	Batch    BatchConfig
}

// ExtractConfig tunes the normalizer and extractor heuristics
type ExtractConfig struct {
	SentenceFlipMinArabic int    // Arabic letters before a whole line flips
	ValueFlipMinArabic    int    // Arabic letters before a field value flips
	EmailStrategy         string // "sectioned" or "positional"
}

// FallbackConfig holds AI fallback-related configuration
type FallbackConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	MaxChars int // normalized-text budget per request
	Retries  int // retries after the first attempt
	Delay    time.Duration
	Timeout  time.Duration
}

// BatchConfig holds batch-runner configuration
type BatchConfig struct {
	QualityThreshold float64 // OK vs LOW_QUALITY boundary, percent
	Workers          int     // parallel documents; 1 means sequential
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			SentenceFlipMinArabic: getEnvAsInt("SENTENCE_FLIP_MIN_ARABIC", 10),
			ValueFlipMinArabic:    getEnvAsInt("VALUE_FLIP_MIN_ARABIC", 3),
			EmailStrategy:         getEnv("EMAIL_STRATEGY", "sectioned"),
		},
		Fallback: FallbackConfig{
			APIKey:   getEnv("PERPLEXITY_API_KEY", ""),
			BaseURL:  getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			Model:    getEnv("PERPLEXITY_MODEL", "sonar"),
			MaxChars: getEnvAsInt("FALLBACK_MAX_CHARS", 22000),
			Retries:  getEnvAsInt("FALLBACK_RETRIES", 2),
			Delay:    getEnvAsDuration("FALLBACK_RETRY_DELAY", 600*time.Millisecond),
			Timeout:  getEnvAsDuration("PERPLEXITY_TIMEOUT", 60*time.Second),
		},
		Batch: BatchConfig{
			QualityThreshold: getEnvAsFloat("QUALITY_THRESHOLD", 35.0),
			Workers:          getEnvAsInt("WORKERS", 1),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Extract.EmailStrategy {
	case "sectioned", "positional":
	default:
		return NewAppError("CONFIG_ERROR", "EMAIL_STRATEGY must be sectioned or positional", ErrInvalidInput)
	}
	if c.Batch.QualityThreshold < 0 || c.Batch.QualityThreshold > 100 {
		return NewAppError("CONFIG_ERROR", "QUALITY_THRESHOLD must be between 0 and 100", ErrInvalidInput)
	}
	if c.Batch.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "WORKERS must be at least 1", ErrInvalidInput)
	}
	return nil
}
