// Package config loads and defaults gridstore configuration.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Backend type names accepted in BackendConfig.Type.
const (
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Config configures a storage context.
type Config struct {
	Backend  BackendConfig `yaml:"backend"`
	Blob     BlobConfig    `yaml:"blob"`
	LogLevel string        `yaml:"log_level"`
}

// BackendConfig selects the storage backend used to persist array schemas.
type BackendConfig struct {
	Type string `yaml:"type"` // "bolt" or "memory"
	Path string `yaml:"path"` // database file for the bolt backend
}

// BlobConfig selects the compressor applied to persisted schema blobs.
type BlobConfig struct {
	Compressor string `yaml:"compressor"` // "none", "gzip", "zlib", "zstd", "snappy", "s2"
	Level      int    `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file and fills in defaults for zero fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Backend.Type == "" {
		c.Backend.Type = BackendBolt
	}
	if c.Backend.Type == BackendBolt && c.Backend.Path == "" {
		c.Backend.Path = "./data/gridstore.db"
	}
	if c.Blob.Compressor == "" {
		c.Blob.Compressor = "zstd"
		c.Blob.Level = 3
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
