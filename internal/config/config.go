package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	Logger LoggerConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	// DocumentWorkers bounds batch document generation concurrency.
	DocumentWorkers int
	// DocumentTimeoutSeconds bounds a single document's generation time.
	DocumentTimeoutSeconds int

	// SnapshotBatchSize chunks rollover inserts.
	SnapshotBatchSize int
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "rendition"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		Logger: LoggerConfig{
			Level:  strings.ToLower(getenv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getenv("LOG_FORMAT", "json")),
		},

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "rendition"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),

		DocumentWorkers:        getenvInt("DOCUMENT_WORKERS", 4),
		DocumentTimeoutSeconds: getenvInt("DOCUMENT_TIMEOUT_SECONDS", 30),

		SnapshotBatchSize: getenvInt("SNAPSHOT_BATCH_SIZE", 500),
	}
}

// Module provides application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
