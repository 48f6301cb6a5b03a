package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/funfirstplay/matchup/app/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Redis         RedisConfig         `yaml:"redis"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_URL"`
}

// NATSConfig holds NATS configuration. An empty URL selects the in-process bus.
type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL"`
}

// RedisConfig holds the sport cache settings. An empty address disables caching.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	SportTTL time.Duration `yaml:"sport_ttl" env:"REDIS_SPORT_TTL"`
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	Addr           string        `yaml:"addr" env:"HTTP_ADDR"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
}

// JWTConfig holds the access token verification secret.
type JWTConfig struct {
	Secret string `yaml:"secret" env:"JWT_SECRET"`
}

// SchedulerConfig controls the confirmation deadline sweep.
type SchedulerConfig struct {
	Enabled       bool          `yaml:"enabled" env:"SCHEDULER_ENABLED"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SCHEDULER_SWEEP_INTERVAL"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL"`
	Environment    string `yaml:"environment" env:"ENV"`
	MetricsEnabled bool   `yaml:"metrics_enabled" env:"METRICS_ENABLED"`
}

// Default returns the configuration used when neither file nor environment
// sets a value.
func Default() Config {
	return Config{
		Redis: RedisConfig{SportTTL: 10 * time.Minute},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			SweepInterval: 5 * time.Minute,
		},
		Observability: ObservabilityConfig{
			LogLevel:       "info",
			Environment:    "development",
			MetricsEnabled: true,
		},
	}
}

// LoadConfig loads and validates the server configuration.
func LoadConfig(filename string) (*Config, error) {
	cfg, err := Load(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML file and applies environment overrides without
// validating. A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn (DATABASE_URL) is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret (JWT_SECRET) is required"))
	}
	if c.Scheduler.Enabled && c.Scheduler.SweepInterval <= 0 {
		errs = append(errs, errors.New("scheduler.sweep_interval must be positive"))
	}
	return errors.Join(errs...)
}

// ToObsConfig maps the app config onto the observability settings.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName:    "matchup",
		Environment:    appCfg.Observability.Environment,
		LogLevel:       appCfg.Observability.LogLevel,
		MetricsEnabled: appCfg.Observability.MetricsEnabled,
	}
}
