package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	JWTSecret             string
	AllowedOrigins        string
	OpenAIKey             string
	OpenAIModel           string
	OpenAIURL             string
	ImportWorkerCount     int
	ImportQueueSize       int
	GenerationWorkerCount int
	GenerationQueueSize   int
	SessionTTLMinutes     int
	SweepIntervalMinutes  int
	StreakSnapshotAt      string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:flashdeck.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		JWTSecret:             envOr("JWT_SECRET", ""),
		AllowedOrigins:        envOr("ALLOWED_ORIGINS", "*"),
		OpenAIKey:             envOr("OPENAI_API_KEY", ""),
		OpenAIModel:           envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIURL:             envOr("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		ImportWorkerCount:     envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:       envIntOr("IMPORT_QUEUE_SIZE", 32),
		GenerationWorkerCount: envIntOr("GENERATION_WORKER_COUNT", 2),
		GenerationQueueSize:   envIntOr("GENERATION_QUEUE_SIZE", 16),
		SessionTTLMinutes:     envIntOr("SESSION_TTL_MINUTES", 120),
		SweepIntervalMinutes:  envIntOr("SWEEP_INTERVAL_MINUTES", 10),
		StreakSnapshotAt:      envOr("STREAK_SNAPSHOT_AT", "23:55"),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.ImportWorkerCount <= 0 {
		return fmt.Errorf("IMPORT_WORKER_COUNT must be positive")
	}
	if c.GenerationWorkerCount <= 0 {
		return fmt.Errorf("GENERATION_WORKER_COUNT must be positive")
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
