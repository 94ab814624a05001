package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins string
	Environment string

	// Reading series
	WindowDays int
	Seed       int64

	// Simulated latency
	LoadDelay  time.Duration
	ThinkDelay time.Duration

	// Assistant sessions
	SessionTTL      time.Duration
	CleanupInterval time.Duration

	// Live updates
	HeartbeatInterval time.Duration
	FailureThreshold  int
	ClientBuffer      int

	LogLevel  string
	LogBuffer int
}

func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// Load reads an optional .env file and then the process environment.
// A missing .env is not an error.
func Load(files ...string) (*Config, bool) {
	loadedEnv := godotenv.Load(files...) == nil

	cfg := &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		WindowDays:        getEnvInt("WINDOW_DAYS", 30),
		Seed:              int64(getEnvInt("SEED", 0)),
		LoadDelay:         getEnvDuration("LOAD_DELAY", time.Second),
		ThinkDelay:        getEnvDuration("THINK_DELAY", time.Second),
		SessionTTL:        getEnvDuration("SESSION_TTL", 30*time.Minute),
		CleanupInterval:   getEnvDuration("CLEANUP_INTERVAL", time.Minute),
		HeartbeatInterval: getEnvDuration("HEARTBEAT_INTERVAL", 30*time.Second),
		FailureThreshold:  getEnvInt("WS_FAILURE_THRESHOLD", 3),
		ClientBuffer:      getEnvInt("WS_CLIENT_BUFFER", 64),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		LogBuffer:         getEnvInt("LOG_BUFFER", 1000),
	}

	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, loadedEnv
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return defaultVal
}
