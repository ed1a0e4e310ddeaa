package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	DataDir                   string
	DatabaseBusyTimeout       time.Duration
	DatabaseConnectRetryCount int
	DatabaseConnectRetryDelay time.Duration
	DatabaseDebug             bool
	DatabaseFilePath          string
	DatabaseMaxRetries        int
	Hostname                  string
	ServerHost                string
	ServerPort                int
}

const environmentENV = "ENVIRONMENT"

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		Hostname:                  hostname,
		ServerHost:                "127.0.0.1",
		ServerPort:                6965,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		if err := loadProductionConfig(cfg); err != nil {
			return nil, err
		}
	}

	// config.yaml and MARGIN_* env vars override the environment defaults.
	if err := loadOverrides(cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseFilePath == "" {
		cfg.DatabaseFilePath = filepath.Join(cfg.DataDir, "margin.sqlite")
	}

	return cfg, nil
}
