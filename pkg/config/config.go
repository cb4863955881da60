package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Application settings
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
}

// Server settings
type ServerConfig struct {
	Port           string        `yaml:"port"`
	HandlerTimeout time.Duration `yaml:"handler_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// Backend analytics API settings
type AnalyticsConfig struct {
	BaseURL            string        `yaml:"base_url"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	RateLimitPerSecond int           `yaml:"rate_limit_per_second"`
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
}

type WorkflowConfig struct {
	DurationTolerance float64 `yaml:"duration_tolerance"`
	ComparisonType    string  `yaml:"comparison_type"`
}

// Logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			HandlerTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Analytics: AnalyticsConfig{
			BaseURL:            "http://localhost:8000/api/v1",
			RequestTimeout:     30 * time.Second,
			RateLimitPerSecond: 100,
			RateLimitBurst:     10,
		},
		Workflow: WorkflowConfig{
			DurationTolerance: 2.0,
			ComparisonType:    "performance",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE and finally the environment (a local .env is honoured).
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.Server.HandlerTimeout = getDurationEnv("HANDLER_TIMEOUT", config.Server.HandlerTimeout)
	config.Server.AllowedOrigins = getListEnv("CORS_ALLOWED_ORIGINS", config.Server.AllowedOrigins)

	config.Logging.Level = getEnv("LOG_LEVEL", config.Logging.Level)

	config.Analytics.BaseURL = strings.TrimRight(getEnv("ANALYTICS_API_URL", config.Analytics.BaseURL), "/")
	config.Analytics.RequestTimeout = getDurationEnv("REQUEST_TIMEOUT", config.Analytics.RequestTimeout)
	config.Analytics.RateLimitPerSecond = getIntEnv("RATE_LIMIT_PER_SECOND", config.Analytics.RateLimitPerSecond)
	config.Analytics.RateLimitBurst = getIntEnv("RATE_LIMIT_BURST", config.Analytics.RateLimitBurst)

	config.Workflow.DurationTolerance = getFloatEnv("DURATION_TOLERANCE", config.Workflow.DurationTolerance)
	config.Workflow.ComparisonType = getEnv("COMPARISON_TYPE", config.Workflow.ComparisonType)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the dashboard cannot run with.
func (c *Config) Validate() error {
	if c.Analytics.BaseURL == "" {
		return fmt.Errorf("analytics base URL is required")
	}
	if c.Analytics.RateLimitPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.Analytics.RateLimitPerSecond)
	}
	if c.Analytics.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.Analytics.RateLimitBurst)
	}
	if c.Workflow.DurationTolerance <= 0 {
		return fmt.Errorf("duration tolerance must be positive, got %v", c.Workflow.DurationTolerance)
	}
	return nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// comma separated; empty entries are dropped
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
