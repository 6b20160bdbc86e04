package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// APIConfig holds the settings for the HTTP API server.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// UploadConfig controls how uploaded traffic files are received.
type UploadConfig struct {
	// TempDir is where uploads are spooled before parsing. Empty means the
	// system temp directory.
	TempDir   string `yaml:"temp_dir"`
	MaxSizeMB int64  `yaml:"max_size_mb"`
}

// PublisherConfig holds the settings for the NATS report publisher.
type PublisherConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// SentryConfig holds the settings for error monitoring.
type SentryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// AccessLogConfig holds the settings for the rotating HTTP access log.
type AccessLogConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Upload    UploadConfig    `yaml:"upload"`
	Publisher PublisherConfig `yaml:"publisher"`
	Sentry    SentryConfig    `yaml:"sentry"`
	AccessLog AccessLogConfig `yaml:"access_log"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if cfg.API.ListenAddr == "" {
		cfg.API.ListenAddr = ":8080"
	}
	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = 16
	}

	return &cfg, nil
}
