package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Billy-Davies-2/tierboard/internal/logger"
)

// Config holds all runtime settings, read from the environment.
type Config struct {
	Environment string
	Port        string
	GRPCPort    string

	RosterSource string
	RosterFile   string
	SQLiteFile   string
	DatabaseURL  string

	ClickHouseAddr     string
	ClickHouseDB       string
	ClickHouseUser     string
	ClickHousePassword string

	NATSURL          string
	NATSSubject      string
	NATSServeSubject string

	ReloadInterval time.Duration
}

// Load reads .env (when present) and then the process environment. The logger
// is rebuilt afterwards so LOG_LEVEL and LOG_FORMAT from .env apply.
func Load() *Config {
	err := godotenv.Load()
	logger.Init()
	if err != nil {
		logger.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "3000"),
		GRPCPort:    getEnv("GRPC_PORT", "50051"),

		RosterSource: getEnv("ROSTER_SOURCE", "memory"),
		RosterFile:   getEnv("ROSTER_FILE", "roster.yaml"),
		SQLiteFile:   getEnv("SQLITE_FILE", "dev.sqlite"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		ClickHouseAddr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDB:       getEnv("CLICKHOUSE_DB", "default"),
		ClickHouseUser:     getEnv("CLICKHOUSE_USER", "default"),
		ClickHousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),

		NATSURL:          getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:      getEnv("NATS_SUBJECT", "roster.get"),
		NATSServeSubject: getEnv("NATS_SERVE_SUBJECT", ""),

		ReloadInterval: getEnvAsDuration("RELOAD_INTERVAL", 0),
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s", "5m") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	logger.Warn("Invalid duration in environment, using default", "key", key, "value", valueStr)
	return fallback
}
