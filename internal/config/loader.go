package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// searchPaths are tried in order when no config path is given.
var searchPaths = []string{"./config.yaml", "/etc/topicreview/config.yaml"}

// Load reads the file named by CONFIG_PATH, or the first existing file in
// the default locations. See LoadFile.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_PATH"))
}

// LoadFile reads configuration with priority ENV > YAML > env-default tags,
// then validates it. An explicit path must exist. With an empty path the
// default locations are tried and, if none exists, only ENV is read.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = firstExisting(searchPaths)
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// firstExisting returns the first path that exists. Paths that fail for a
// reason other than absence are returned so the read reports the error.
func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil || !errors.Is(err, fs.ErrNotExist) {
			return p
		}
	}
	return ""
}
