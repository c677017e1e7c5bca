package config

import (
	"fmt"
	"os"
	"time"

	"frustration-list/internal/notify"
	"frustration-list/internal/store"

	"github.com/joho/godotenv"
)

const (
	envAddr        = "FRUSTRATIONS_ADDR"
	envBackend     = "FRUSTRATIONS_BACKEND"
	envRedisAddr   = "FRUSTRATIONS_REDIS_ADDR"
	envRedisPrefix = "FRUSTRATIONS_REDIS_PREFIX"
	envNotifyDelay = "FRUSTRATIONS_NOTIFY_DELAY"
	envLogFormat   = "FRUSTRATIONS_LOG_FORMAT"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds the runtime settings of the server.
type Config struct {
	Addr        string
	Backend     string
	RedisAddr   string
	RedisPrefix string
	NotifyDelay time.Duration
	LogFormat   string
}

func Default() Config {
	return Config{
		Addr:        ":3000",
		Backend:     store.BackendMemory,
		RedisAddr:   "localhost:6379",
		RedisPrefix: "frustrations",
		NotifyDelay: notify.DefaultDelay,
		LogFormat:   LogFormatConsole,
	}
}

// Load starts from Default, applies an optional .env file from the working
// directory and then the FRUSTRATIONS_* environment variables.
func Load() (Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv(envAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(envBackend); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv(envRedisPrefix); v != "" {
		cfg.RedisPrefix = v
	}
	if v := os.Getenv(envNotifyDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envNotifyDelay, err)
		}
		cfg.NotifyDelay = d
	}
	if v := os.Getenv(envLogFormat); v != "" {
		cfg.LogFormat = v
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case store.BackendMemory, store.BackendBadger, store.BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Backend == store.BackendRedis && c.RedisAddr == "" {
		return fmt.Errorf("redis backend needs a redis address")
	}
	if c.NotifyDelay <= 0 {
		return fmt.Errorf("notify delay must be positive, got %s", c.NotifyDelay)
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
