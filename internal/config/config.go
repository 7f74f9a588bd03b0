package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	LogFormat     string
	LogLevel      string
	MaxUploadSize int64
	EnableSwagger bool

	// Remote file API
	APIBaseURL string
	APITimeout time.Duration

	// Edit sessions
	SessionTTL time.Duration
	RedisAddr  string
	RedisPass  string
	RedisDB    int

	// Browser access
	CORSAllowedOrigins []string
	UploadRateLimit    float64
	UploadRateBurst    int

	// Revision journal
	PostgresDBURL string

	// Snapshot archive
	ArchiveS3Endpoint        string
	ArchiveS3AccessKeyID     string
	ArchiveS3AccessKeySecret string
	ArchiveS3Bucket          string
	ArchiveS3Region          string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Get the executable directory
	execPath, err := os.Executable()
	if err != nil {
		logger.Warn("Could not determine executable path", zap.Error(err))
	}

	// Determine project root directory
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
	envPath := filepath.Join(projectRoot, ".env")

	// Load .env file if it exists
	if err := godotenv.Load(envPath); err != nil {
		// Try loading from current directory as fallback
		if err := godotenv.Load(); err != nil {
			logger.Info("No .env file found or error loading .env file. Using environment variables.")
		} else {
			logger.Info("Loaded environment variables from current directory .env file")
		}
	} else {
		logger.Info("Loaded environment variables", zap.String("path", envPath))
	}

	return FromEnv(), nil
}

// FromEnv builds the configuration from the current process environment
func FromEnv() *Config {
	config := &Config{
		// Server configuration
		Port:          getEnvInt("PORT", 8080),
		ReadTimeout:   getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:  getEnvDuration("WRITE_TIMEOUT", 60*time.Second),
		LogFormat:     getEnvString("LOG_FORMAT", "json"),
		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 10*1024*1024)),
		EnableSwagger: getEnvBool("ENABLE_SWAGGER", true),

		// Remote file API
		APIBaseURL: getEnvString("API_BASE_URL", "http://localhost:5000"),
		APITimeout: getEnvDuration("API_TIMEOUT", 30*time.Second),

		// Edit sessions
		SessionTTL: getEnvDuration("SESSION_TTL", 2*time.Hour),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:    getEnvInt("REDIS_DB", 0),

		// Browser access
		CORSAllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		UploadRateLimit:    getEnvFloat("UPLOAD_RATE_LIMIT", 1),
		UploadRateBurst:    getEnvInt("UPLOAD_RATE_BURST", 5),

		// Revision journal
		PostgresDBURL: os.Getenv("POSTGRES_DB_URL"),

		// Snapshot archive
		ArchiveS3Endpoint:        os.Getenv("ARCHIVE_S3_ENDPOINT"),
		ArchiveS3AccessKeyID:     os.Getenv("ARCHIVE_S3_ACCESS_KEY_ID"),
		ArchiveS3AccessKeySecret: os.Getenv("ARCHIVE_S3_ACCESS_KEY_SECRET"),
		ArchiveS3Bucket:          getEnvString("ARCHIVE_S3_BUCKET", "invoice-snapshots"),
		ArchiveS3Region:          getEnvString("ARCHIVE_S3_REGION", "ap-south-1"),
	}

	// Validate critical configuration
	validateConfig(config)

	return config
}

// ArchiveEnabled reports whether committed documents are archived to S3
func (c *Config) ArchiveEnabled() bool {
	return c.ArchiveS3Endpoint != "" && c.ArchiveS3AccessKeyID != "" && c.ArchiveS3AccessKeySecret != ""
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if os.Getenv("API_BASE_URL") == "" {
		logger.Warn("No API_BASE_URL provided, using default", zap.String("api_base_url", config.APIBaseURL))
	}

	if config.RedisAddr == "" {
		logger.Info("No REDIS_ADDR provided. Edit sessions are kept in memory.")
	}

	if config.PostgresDBURL == "" {
		logger.Info("No POSTGRES_DB_URL provided. Revision journal is disabled.")
	}

	if !config.ArchiveEnabled() {
		logger.Info("Snapshot archive is not configured. Committed documents will not be archived.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logger.Warn("Invalid integer value, using default",
			zap.String("key", key), zap.String("value", valueStr), zap.Int("default", defaultValue))
		return defaultValue
	}

	return value
}

// getEnvFloat gets a float from an environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logger.Warn("Invalid float value, using default",
			zap.String("key", key), zap.String("value", valueStr), zap.Float64("default", defaultValue))
		return defaultValue
	}

	return value
}

// getEnvDuration reads a duration such as "90s" or "2h". A bare integer is
// taken as seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logger.Warn("Invalid duration value, using default",
			zap.String("key", key), zap.String("value", valueStr), zap.Duration("default", defaultValue))
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		logger.Warn("Empty list value, using default",
			zap.String("key", key), zap.Strings("default", defaultValue))
		return defaultValue
	}
	return values
}
