package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `yaml:"service_name"`
	HTTPPort    string `yaml:"http_port"`
	PostgresDSN string `yaml:"postgres_dsn"`
	NetworkID   string `yaml:"network_id"`
	Environment string `yaml:"environment"`

	SealInterval  time.Duration `yaml:"seal_interval"`
	SealBatchSize int           `yaml:"seal_batch_size"`
	SealAuthority string        `yaml:"seal_authority"`

	EnableSentinelConsumer bool `yaml:"enable_sentinel_consumer"`
	EnableSealScheduler    bool `yaml:"enable_seal_scheduler"`
	EnableMetrics          bool `yaml:"enable_metrics"`
}

// Load reads configuration from the environment. When WARDEN_CONFIG points
// at a YAML file, values set in the file override the environment.
func Load() (Config, error) {
	cfg := Config{
		ServiceName: envString("SERVICE_NAME", "warden"),
		HTTPPort:    envString("HTTP_PORT", "8080"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		NetworkID:   envString("NETWORK_ID", "warden-local"),
		Environment: envString("ENVIRONMENT", "development"),

		SealInterval:  envDuration("SEAL_INTERVAL", time.Minute),
		SealBatchSize: envInt("SEAL_BATCH_SIZE", 256),
		SealAuthority: envString("SEAL_AUTHORITY", "warden-notary"),

		EnableSentinelConsumer: envBool("ENABLE_SENTINEL_CONSUMER", true),
		EnableSealScheduler:    envBool("ENABLE_SEAL_SCHEDULER", true),
		EnableMetrics:          envBool("ENABLE_METRICS", true),
	}

	if path := strings.TrimSpace(os.Getenv("WARDEN_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if cfg.SealBatchSize <= 0 {
		return Config{}, fmt.Errorf("seal batch size must be positive, got %d", cfg.SealBatchSize)
	}
	if cfg.SealInterval <= 0 {
		return Config{}, fmt.Errorf("seal interval must be positive, got %s", cfg.SealInterval)
	}
	return cfg, nil
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
