package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Supabase configuration
	SupabaseURL            string
	SupabaseServiceRoleKey string
	SupabaseStorageBucket  string
	SupabaseJWTSecret      string

	// Upload limits (overridable at runtime via the dynamic config file)
	MaxUploadBytes         int64
	CompressThresholdBytes int64
	MaxImageWidth          int
	CallTimeout            time.Duration

	// Dynamic configuration
	DynamicConfigPath string

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		// Supabase
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "attachments"),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),

		// Upload limits
		MaxUploadBytes:         getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		CompressThresholdBytes: getEnvInt64("COMPRESS_THRESHOLD_BYTES", 1<<20),
		MaxImageWidth:          getEnvInt("MAX_IMAGE_WIDTH", 1920),
		CallTimeout:            time.Duration(getEnvInt("CALL_TIMEOUT_SECONDS", 30)) * time.Second,

		DynamicConfigPath: getEnv("DYNAMIC_CONFIG_PATH", ""),

		// Logging and features
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required in production")
		}
		if c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required in production")
		}
		if c.SupabaseJWTSecret == "" {
			return fmt.Errorf("SUPABASE_JWT_SECRET is required in production")
		}
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("CALL_TIMEOUT_SECONDS must be positive")
	}

	return nil
}

// UseSupabase reports whether a hosted backend is configured; without it the
// application runs on the in-memory stores.
func (c *Config) UseSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceRoleKey != ""
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
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

// getEnvInt64 gets a 64-bit integer environment variable with a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
