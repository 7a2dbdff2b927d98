package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Testing  TestingConfig  `mapstructure:"testing"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the SQL driver and connection string.
// The sqlite driver with ":memory:" gives an ephemeral per-process database.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite pgx"`
	URL    string `mapstructure:"url"    validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,gtfield=TokenLifetimeMinutes"`
	RefreshCookieName           string `mapstructure:"refresh_cookie_name"            validate:"required"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=4,lte=31"`
}

// TestingConfig controls the identities created by the test user factories.
type TestingConfig struct {
	EmailDomain         string `mapstructure:"email_domain"          validate:"required,hostname"`
	UserPassword        string `mapstructure:"user_password"         validate:"required,min=12,max=72"`
	AnonymousCookieName string `mapstructure:"anonymous_cookie_name" validate:"required"`
}
