package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPebble   = "pebble"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	APIKey          string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	Store           StoreConfig
	Redis           RedisConfig
	Seed            SeedConfig
	Kafka           KafkaConfig
}

// StoreConfig selects and locates the version store.
type StoreConfig struct {
	Backend     string
	PebbleDir   string
	DatabaseURL string
}

// RedisConfig configures the Redis client used by the redis backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SeedConfig controls the startup bulk load. An empty File means the bundled
// ISO 3166-1 dataset.
type SeedConfig struct {
	Enabled bool
	File    string
}

// KafkaConfig configures the version-change feed. No brokers disables it.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
	PublishTimeout    time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:   getEnv("COUNTRY_ADDR", ":8080"),
		APIKey: getEnv("API_KEY", "default-test-key"),
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
			PebbleDir:   getEnv("PEBBLE_DIR", "data/pebble"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Seed: SeedConfig{
			File: os.Getenv("SEED_FILE"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "country-versions"),
		},
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return Server{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Seed.Enabled, err = boolEnv("SEED_ENABLED", false); err != nil {
		return Server{}, err
	}
	if cfg.Redis.PoolSize, err = intEnv("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = intEnv("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = durationEnv("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.PublishTimeout, err = durationEnv("KAFKA_PUBLISH_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	partitions, err := intEnv("KAFKA_PARTITIONS", 3)
	if err != nil {
		return Server{}, err
	}
	replication, err := intEnv("KAFKA_REPLICATION_FACTOR", 1)
	if err != nil {
		return Server{}, err
	}
	cfg.Kafka.Partitions = int32(partitions)
	cfg.Kafka.ReplicationFactor = int16(replication)

	return cfg, cfg.Validate()
}

// Validate checks that the selected backend has what it needs.
func (c Server) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY must not be empty")
	}
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPebble:
		if c.Store.PebbleDir == "" {
			return fmt.Errorf("PEBBLE_DIR is required for the pebble backend")
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
