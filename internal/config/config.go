package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Board    BoardConfig    `mapstructure:"board" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSAllowedOrigins lists origins allowed by the CORS middleware. "*" allows any.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// RateLimitRPS and RateLimitBurst configure the per-client token bucket.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gt=0"`

	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the SQL dialect: "postgres" or "sqlite3".
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite3"`
	// URL is a postgres connection string or a sqlite file DSN.
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// BoardConfig holds settings that affect how the board is computed.
type BoardConfig struct {
	// Timezone is the IANA zone used to decide what "today" is for due dates.
	Timezone    string `mapstructure:"timezone" validate:"required,timezone"`
	DueSoonDays int    `mapstructure:"due_soon_days" validate:"gte=0"`
}
