package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port        int      `env:"PORT" envDefault:"8080"`
	GinMode     string   `env:"GIN_MODE" envDefault:"release"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Simulated backend round trip for question and answer submissions
	SubmitLatency     time.Duration `env:"SUBMIT_LATENCY" envDefault:"1s"`
	SubmitFailureRate float64       `env:"SUBMIT_FAILURE_RATE" envDefault:"0"`

	DraftTTL time.Duration `env:"DRAFT_TTL" envDefault:"168h"`

	// When set, viewers are identified by an HS256 bearer token issued elsewhere
	JWTSecret     string `env:"JWT_SECRET"`
	DefaultViewer string `env:"DEFAULT_VIEWER" envDefault:"current_user"`

	SeedMockData bool `env:"SEED_MOCK_DATA" envDefault:"true"`
}

// New loads .env if present and parses the environment.
func New() (*Config, error) {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		slog.Debug("no .env file loaded", "event", "config_env_file_missing", "error", loadErr)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("PORT out of range: %d", c.Port)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return errors.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.SubmitLatency < 0 {
		return errors.New("SUBMIT_LATENCY must not be negative")
	}
	if c.SubmitFailureRate < 0 || c.SubmitFailureRate > 1 {
		return errors.Errorf("SUBMIT_FAILURE_RATE must be within [0,1], got %v", c.SubmitFailureRate)
	}
	if c.DraftTTL <= 0 {
		return errors.New("DRAFT_TTL must be positive")
	}
	if c.DefaultViewer == "" {
		return errors.New("DEFAULT_VIEWER must not be empty")
	}
	return nil
}
