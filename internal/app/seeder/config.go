package seeder

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder settings.
type Config struct {
	FixturePath string `yaml:"fixture_path" env:"SEEDER_FIXTURE_PATH"`
	DryRun      bool   `yaml:"dry_run"      env:"SEEDER_DRY_RUN"`
	// PinnedTime replaces the clock when set, making sort keys and
	// timestamps repeatable across runs.
	PinnedTime time.Time `yaml:"pinned_time" env:"SEEDER_PINNED_TIME" env-layout:"2006-01-02T15:04:05Z07:00"`
}

// LoadConfig reads seeder settings from path, or from ENV alone when path
// is empty. ENV overrides the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("seeder config: file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
	}
	return &cfg, nil
}

// clock returns the time source the pipeline stamps rows with.
func (c Config) clock() func() time.Time {
	if c.PinnedTime.IsZero() {
		return time.Now
	}
	pinned := c.PinnedTime
	return func() time.Time { return pinned }
}
