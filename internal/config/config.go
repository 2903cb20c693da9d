// Package config loads process configuration. It is the only package that
// reads the environment; everything else receives these structs through
// constructors.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Storage drivers accepted in DATABASE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// MinJWTSecretLength is the minimum HMAC-SHA256 secret length.
const MinJWTSecretLength = 32

// Server configures the registration server.
type Server struct {
	Port                 string        `env:"PORT"                   envDefault:"8000"`
	DatabaseDriver       string        `env:"DATABASE_DRIVER"        envDefault:"sqlite"`
	DatabasePath         string        `env:"DATABASE_PATH"          envDefault:"hackevent.db"`
	DatabaseURL          string        `env:"DATABASE_URL"`
	RedisURL             string        `env:"REDIS_URL"`
	StoreTimeout         time.Duration `env:"STORE_TIMEOUT"          envDefault:"5s"`
	EmailCaseInsensitive bool          `env:"EMAIL_CASE_INSENSITIVE" envDefault:"false"`
	InvitationPath       string        `env:"INVITATION_PATH"        envDefault:"hack_event_invitation.html"`
	AssetsDir            string        `env:"ASSETS_DIR"             envDefault:"assets"`
	JWTSecret            string        `env:"JWT_SECRET"`
	AdminPasswordHash    string        `env:"ADMIN_PASSWORD_HASH"`
	CookieSecure         bool          `env:"COOKIE_SECURE"          envDefault:"true"`
	RegisterRate         float64       `env:"REGISTER_RATE"          envDefault:"0.2"`
	RegisterBurst        float64       `env:"REGISTER_BURST"         envDefault:"5"`
}

// Generator configures the news report generator and the page builder.
type Generator struct {
	APIKey         string `env:"OPENROUTER_API_KEY"`
	Model          string `env:"OPENROUTER_MODEL"    envDefault:"z-ai/glm-4.6"`
	BaseURL        string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	ReportsDir     string `env:"NEWS_DIR"            envDefault:"news_database"`
	EventConfig    string `env:"EVENT_CONFIG"        envDefault:"event.yaml"`
	InvitationPath string `env:"INVITATION_PATH"     envDefault:"hack_event_invitation.html"`
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: load %s: %v", ErrInvalidConfig, p, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadServer parses and validates the server configuration.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (s Server) Validate() error {
	switch s.DatabaseDriver {
	case DriverSQLite:
		if s.DatabasePath == "" {
			return fmt.Errorf("%w: DATABASE_PATH is required for sqlite", ErrInvalidConfig)
		}
	case DriverPostgres:
		if s.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for postgres", ErrInvalidConfig)
		}
	case DriverRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("%w: REDIS_URL is required for redis", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown DATABASE_DRIVER %q", ErrInvalidConfig, s.DatabaseDriver)
	}

	if s.StoreTimeout <= 0 {
		return fmt.Errorf("%w: STORE_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if s.RegisterRate < 0 || s.RegisterBurst < 1 {
		return fmt.Errorf("%w: REGISTER_RATE must be >= 0 and REGISTER_BURST >= 1", ErrInvalidConfig)
	}
	if s.AdminPasswordHash != "" && len(s.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("%w: JWT_SECRET must be at least %d characters when ADMIN_PASSWORD_HASH is set", ErrInvalidConfig, MinJWTSecretLength)
	}
	return nil
}

// LoadGenerator parses the generator configuration.
func LoadGenerator() (Generator, error) {
	var cfg Generator
	if err := ParseEnv(&cfg); err != nil {
		return Generator{}, err
	}
	return cfg, nil
}
