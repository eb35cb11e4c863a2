package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string `env:"PORT" env-default:"4000"`
	Env      string `env:"APP_ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DBDriver       string `env:"DB_DRIVER" env-default:"postgres"` // postgres, mysql, sqlite
	DBHost         string `env:"DB_HOST" env-default:"localhost"`
	DBPort         int    `env:"DB_PORT" env-default:"5432"`
	DBUser         string `env:"DB_USER" env-default:"postgres"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME" env-default:"courses"` // file path when DB_DRIVER=sqlite
	DBSSLMode      string `env:"DB_SSLMODE" env-default:"disable"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	DBLogLevel     string `env:"DB_LOG_LEVEL" env-default:"warn"`

	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" env-default:"http://localhost:3000,http://127.0.0.1:3000"`

	// DotEnvLoaded reports whether a .env file was found.
	DotEnvLoaded bool
}

// LoadConfig reads an optional .env file (or the given files) into the
// process environment, then builds the Config from it. Variables already set
// in the environment win over the file.
func LoadConfig(envFiles ...string) (*Config, error) {
	loaded := godotenv.Load(envFiles...) == nil

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration from environment: %w", err)
	}
	cfg.DotEnvLoaded = loaded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres, mysql or sqlite)", c.DBDriver)
	}
	if strings.TrimSpace(c.DBName) == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	return nil
}

// AllowOrigins returns the CORS origin list in the comma-separated form fiber
// expects, with blanks removed.
func (c *Config) AllowOrigins() string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return strings.Join(origins, ",")
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
