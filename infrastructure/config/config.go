package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion          string
	ChannelsTable      string
	QuestionsTable     string
	AnswersTable       string
	QuestionsByTimeLSI string
	PurgeQueueURL      string
	EventBusName       string

	// Cascade worker configuration
	MaxConcurrentBatches int

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel      string
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),

		ChannelsTable:      getEnv("CHANNELS_TABLE_NAME", "df-channels"),
		QuestionsTable:     getEnv("QUESTIONS_TABLE_NAME", "df-questions"),
		AnswersTable:       getEnv("ANSWERS_TABLE_NAME", "df-answers"),
		QuestionsByTimeLSI: getEnv("QUESTIONS_CREATED_TIMESTAMP_INDEX", "createdAt-index"),
		PurgeQueueURL:      getEnv("DELETE_ALL_QUESTIONS_QUEUE_URL", ""),
		EventBusName:       getEnv("EVENT_BUS_NAME", "df-events"),

		MaxConcurrentBatches: getEnvInt("MAX_CONCURRENT_BATCHES", 4),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "discussion-forum"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.PurgeQueueURL == "" {
			return fmt.Errorf("DELETE_ALL_QUESTIONS_QUEUE_URL is required")
		}
	}
	if c.MaxConcurrentBatches < 1 {
		return fmt.Errorf("MAX_CONCURRENT_BATCHES must be at least 1")
	}
	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
