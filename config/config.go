package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/chaos-io/photo2gif/scratch"
)

type Config struct {
	// HTTP listen port.
	Port int `env:"PORT" envDefault:"8000"`
	// Base URL of the rembg-compatible segmentation backend.
	RembgURL string `env:"REMBG_URL" envDefault:"http://127.0.0.1:7000"`
	// Directory for generated GIF artifacts; empty means the platform
	// temp root plus a fixed subfolder.
	ScratchDir string `env:"SCRATCH_DIR"`
	// Cron spec for periodic scratch sweeps; empty disables the
	// scheduler and only the startup sweep runs.
	SweepSchedule string `env:"SWEEP_SCHEDULE"`
	// debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and parses environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = scratch.DefaultPath()
	}
	return cfg, nil
}
