package config

import "time"

// NewForTest returns a config for unit tests without consulting the
// environment or any config file.
func NewForTest() *Config {
	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
	}
	loadTestConfig(cfg)
	return cfg
}

func loadTestConfig(cfg *Config) {
	cfg.DataDir = "./tmp"
	cfg.DatabaseFilePath = ":memory:"
	// Bind to an ephemeral port so parallel test runs don't collide.
	cfg.ServerPort = 0
}
