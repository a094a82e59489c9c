package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultAPIBaseURL is the hosted Hack-or-Snooze API this client targets.
const DefaultAPIBaseURL = "https://hack-or-snooze-v2.herokuapp.com"

type Config struct {
	APIBaseURL  string        // base URL of the remote story API
	HTTPTimeout time.Duration // single per-request timeout, no retries (see DESIGN.md)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Ephemeral bool // true => in-memory credential store, nothing persisted

	// Redis (durable credential store)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

// Load builds the configuration from an optional YAML file overlaid by
// environment variables. Environment always wins over the file.
func Load() *Config {
	file := loadFile(configFilePath())

	cfg := &Config{
		APIBaseURL:  getenv("SNOOZE_API_BASE_URL", file.str("api_base_url", DefaultAPIBaseURL)),
		HTTPTimeout: mustDuration("SNOOZE_HTTP_TIMEOUT", file.duration("http_timeout", 10*time.Second)),

		LogLevel:  getenv("SNOOZE_LOG_LEVEL", file.str("log_level", "warn")),
		PrettyLog: mustBool("SNOOZE_PRETTY_LOG", file.boolean("pretty_log", true)),

		Ephemeral: mustBool("SNOOZE_EPHEMERAL", file.boolean("ephemeral", false)),

		RedisAddr:           getenv("SNOOZE_REDIS_ADDR", file.str("redis_addr", "localhost:6379")),
		RedisUser:           getenv("SNOOZE_REDIS_USERNAME", file.str("redis_username", "default")),
		RedisPassword:       getenv("SNOOZE_REDIS_PASSWORD", file.str("redis_password", "")),
		RedisDB:             getenvInt("SNOOZE_REDIS_DB", file.integer("redis_db", 0)),
		RedisDT:             mustDuration("SNOOZE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("SNOOZE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("SNOOZE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("SNOOZE_REDIS_POOL_SIZE", 4),
		RedisConnectTimeout: mustDuration("SNOOZE_REDIS_CONNECT_TIMEOUT", 10*time.Second),
		RedisRetryInterval:  mustDuration("SNOOZE_REDIS_RETRY_INTERVAL", 1*time.Second),
		RedisMaxWait:        mustDuration("SNOOZE_REDIS_MAX_WAIT", 5*time.Second),
		RedisPingTimeout:    mustDuration("SNOOZE_REDIS_PING_TIMEOUT", 2*time.Second),
		RedisWarnThreshold:  getenvInt("SNOOZE_REDIS_WARN_THRESHOLD", 3),
	}

	return cfg
}

// configFilePath returns the YAML config location: SNOOZE_CONFIG if set,
// otherwise ~/.config/snooze/config.yaml.
func configFilePath() string {
	if p := os.Getenv("SNOOZE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "snooze", "config.yaml")
}

// helpers

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
