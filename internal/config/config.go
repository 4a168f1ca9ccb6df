package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the client configuration, read from JP_* environment variables.
type Config struct {
	APIURL    string `env:"JP_API_URL,    default=http://localhost:8000/api"`
	SiteURL   string `env:"JP_SITE_URL,   default=https://nemesisgroup.in"`
	Home      string `env:"JP_HOME"`
	StartPath string `env:"JP_START_PATH, default=/"`

	LogLevel  string `env:"JP_LOG_LEVEL,  default=info"`
	LogFile   string `env:"JP_LOG_FILE"`
	LogPretty bool   `env:"JP_LOG_PRETTY, default=false"`

	// RotateInterval is how often the community widget moves to the next room.
	RotateInterval time.Duration `env:"JP_ROTATE_INTERVAL, default=2500ms"`

	Redis RedisConfig
}

// RedisConfig enables the shared session backend when Addr is set.
type RedisConfig struct {
	Addr     string `env:"JP_REDIS_ADDR"`
	Password string `env:"JP_REDIS_PASSWORD"`
	DB       int    `env:"JP_REDIS_DB, default=0"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: get home dir: %w", err)
		}
		cfg.Home = filepath.Join(home, ".nemesis")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.Home, "jobportal.log")
	}
	if cfg.RotateInterval <= 0 {
		return nil, fmt.Errorf("config: JP_ROTATE_INTERVAL must be positive, got %s", cfg.RotateInterval)
	}
	return &cfg, nil
}
