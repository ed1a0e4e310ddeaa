package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV = "MARGIN_CONFIG_FILE"
	envPrefix     = "MARGIN_"
)

// loadOverrides layers an optional config.yaml and MARGIN_* environment
// variables on top of the environment defaults. Env keys use a double
// underscore as the section separator (e.g. MARGIN_DATABASE__FILE_PATH)
// since the config keys themselves contain single underscores.
func loadOverrides(cfg *Config) error {
	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "failed to load config file: %s", path)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	if k.Exists("data_dir") {
		cfg.DataDir = k.String("data_dir")
	}
	if k.Exists("database.busy_timeout") {
		cfg.DatabaseBusyTimeout = k.Duration("database.busy_timeout")
	}
	if k.Exists("database.connect_retry_count") {
		cfg.DatabaseConnectRetryCount = k.Int("database.connect_retry_count")
	}
	if k.Exists("database.connect_retry_delay") {
		cfg.DatabaseConnectRetryDelay = k.Duration("database.connect_retry_delay")
	}
	if k.Exists("database.debug") {
		cfg.DatabaseDebug = k.Bool("database.debug")
	}
	if k.Exists("database.file_path") {
		cfg.DatabaseFilePath = k.String("database.file_path")
	}
	if k.Exists("database.max_retries") {
		cfg.DatabaseMaxRetries = k.Int("database.max_retries")
	}
	if k.Exists("server.host") {
		cfg.ServerHost = k.String("server.host")
	}
	if k.Exists("server.port") {
		cfg.ServerPort = k.Int("server.port")
	}

	return nil
}
