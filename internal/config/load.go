package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// SCRY_DATABASE_URL overrides database.url.
const EnvPrefix = "SCRY"

// Default values. The database defaults to an in-memory SQLite instance so
// test suites run without external services.
const (
	DefaultPort                        = 8080
	DefaultLogLevel                    = "info"
	DefaultDatabaseDriver              = "sqlite"
	DefaultDatabaseURL                 = ":memory:"
	DefaultTokenLifetimeMinutes        = 60
	DefaultRefreshTokenLifetimeMinutes = 10080
	DefaultRefreshCookieName           = "refresh_token"
	DefaultBcryptCost                  = 4
	DefaultEmailDomain                 = "test.scry.local"
	DefaultUserPassword                = "Password123#@!"
	DefaultAnonymousCookieName         = "ANONYMOUS_USER_EXTERNAL_ID"
)

// Option customizes how Load locates configuration.
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	overrides  map[string]any
}

// WithConfigFile reads the given YAML file in addition to the environment.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithOverride sets a key (dotted viper path) before validation. Overrides
// take precedence over files and environment variables.
func WithOverride(key string, value any) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		o.overrides[key] = value
	}
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...Option) (*Config, error) {
	options := loadOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", options.configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for key, value := range options.overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct-level constraints on a configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setDefaults registers every key so that AutomaticEnv can resolve
// environment overrides during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)

	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.url", DefaultDatabaseURL)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", DefaultTokenLifetimeMinutes)
	v.SetDefault("auth.refresh_token_lifetime_minutes", DefaultRefreshTokenLifetimeMinutes)
	v.SetDefault("auth.refresh_cookie_name", DefaultRefreshCookieName)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)

	v.SetDefault("testing.email_domain", DefaultEmailDomain)
	v.SetDefault("testing.user_password", DefaultUserPassword)
	v.SetDefault("testing.anonymous_cookie_name", DefaultAnonymousCookieName)
}
