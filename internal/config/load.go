package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // scheduler.timezone must resolve without a system zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. TASKMGMT_DATABASE_URL.
const EnvPrefix = "TASKMGMT"

var defaults = map[string]any{
	"server.port":                 8080,
	"server.log_level":            "info",
	"server.shutdown_timeout":     "10s",
	"database.url":                "",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     25,
	"database.conn_max_lifetime":  "5m",
	"auth.jwt_secret":             "",
	"auth.token_lifetime_minutes": 60,
	"auth.bcrypt_cost":            10,
	"broker.driver":               "postgres",
	"broker.channel":              "tasks",
	"broker.reconnect_delay":      "2s",
	"notifier.enabled":            true,
	"notifier.max_retries":        3,
	"notifier.base_delay":         "1s",
	"notifier.max_delay":          "30s",
	"scheduler.enabled":           true,
	"scheduler.due_scan_cron":     "0 8 * * *",
	"scheduler.timezone":          "UTC",
}

// Load reads configuration from an optional config.yaml (in the working
// directory or /etc/task-management) and from the environment.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// the default locations, where a missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/task-management")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints and the values the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Scheduler.Timezone); err != nil {
		return fmt.Errorf("config validation failed: scheduler.timezone: %w", err)
	}
	return nil
}
