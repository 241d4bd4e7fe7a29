package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Broker    BrokerConfig    `mapstructure:"broker" validate:"required"`
	Notifier  NotifierConfig  `mapstructure:"notifier" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains credential signing and password hashing settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// TokenLifetime returns the credential lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// BrokerConfig selects the broadcast channel implementation.
type BrokerConfig struct {
	// Driver is "postgres" (LISTEN/NOTIFY) or "memory" (single process only).
	Driver         string        `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	Channel        string        `mapstructure:"channel" validate:"required,max=63"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay" validate:"gt=0"`
}

// NotifierConfig controls the change-event consumer.
type NotifierConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `mapstructure:"base_delay" validate:"gt=0"`
	MaxDelay   time.Duration `mapstructure:"max_delay" validate:"omitempty,gtefield=BaseDelay"`
}

// SchedulerConfig controls the daily due-date scan.
type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DueScanCron string `mapstructure:"due_scan_cron" validate:"required"`
	Timezone    string `mapstructure:"timezone" validate:"required"`
}
