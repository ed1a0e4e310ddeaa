package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

func loadProductionConfig(cfg *Config) error {
	// The store lives in an application-private data directory, created on
	// first launch.
	configDir, err := os.UserConfigDir()
	if err != nil {
		return errors.WithStack(err)
	}

	cfg.DataDir = filepath.Join(configDir, "margin")
	return nil
}
