package importer

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds bulk import settings.
type Config struct {
	InputDir    string `yaml:"input_dir"     env:"IMPORT_INPUT_DIR"     env-default:"./seed-input"`
	UserID      string `yaml:"user_id"       env:"IMPORT_USER_ID"`
	MaxTripDays int    `yaml:"max_trip_days" env:"IMPORT_MAX_TRIP_DAYS" env-default:"60"`
	Atomic      bool   `yaml:"atomic"        env:"IMPORT_ATOMIC"`
	DryRun      bool   `yaml:"dry_run"       env:"IMPORT_DRY_RUN"`
}

// LoadConfig reads import configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("import config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("import config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("import config: read env: %w", err)
	}

	if _, err := cfg.Owner(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Owner parses the user the imported itineraries are assigned to.
func (c *Config) Owner() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, fmt.Errorf("import config: user_id is required")
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("import config: user_id: %w", err)
	}
	return id, nil
}
