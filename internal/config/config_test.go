package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridstore/gridstore/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Backend.Type != config.BackendBolt {
		t.Errorf("default backend type = %q, want %q", cfg.Backend.Type, config.BackendBolt)
	}
	if cfg.Backend.Path == "" {
		t.Error("default bolt path is empty")
	}
	if cfg.Blob.Compressor != "zstd" || cfg.Blob.Level != 3 {
		t.Errorf("default blob compressor = %s:%d, want zstd:3", cfg.Blob.Compressor, cfg.Blob.Level)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridstore.yaml")
	data := []byte(`backend:
  type: memory
blob:
  compressor: gzip
  level: 5
log_level: debug
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.Type != config.BackendMemory {
		t.Errorf("backend type = %q, want memory", cfg.Backend.Type)
	}
	if cfg.Blob.Compressor != "gzip" || cfg.Blob.Level != 5 {
		t.Errorf("blob = %s:%d, want gzip:5", cfg.Blob.Compressor, cfg.Blob.Level)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadPartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridstore.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.Type != config.BackendBolt {
		t.Errorf("backend type = %q, want bolt default", cfg.Backend.Type)
	}
	if cfg.Blob.Compressor != "zstd" {
		t.Errorf("blob compressor = %q, want zstd default", cfg.Blob.Compressor)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
