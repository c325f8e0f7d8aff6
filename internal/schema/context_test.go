package schema_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gridstore/gridstore/internal/config"
	"github.com/gridstore/gridstore/internal/schema"
)

func TestNewContextBadBlobCompressor(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.Type = config.BackendMemory
	cfg.Blob.Compressor = "brotli"
	if _, err := schema.NewContext(cfg, zerolog.Nop()); err == nil {
		t.Error("NewContext accepted unknown blob compressor")
	}

	cfg.Blob.Compressor = "gzip"
	cfg.Blob.Level = 99
	if _, err := schema.NewContext(cfg, zerolog.Nop()); err == nil {
		t.Error("NewContext accepted out-of-range blob level")
	}
}

// End-to-end over the bolt backend: create with one context, reopen the
// database, load with a fresh context.
func TestBoltRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.Path = filepath.Join(t.TempDir(), "gridstore.db")
	cfg.Blob.Compressor = "gzip"
	cfg.Blob.Level = 5

	ctx, err := schema.NewContext(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	s := newWeatherSchema(ctx)
	if _, err := s.Create("arrays/weather"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Close()
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ctx2, err := schema.NewContext(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer ctx2.Close()

	loaded, err := schema.Load(ctx2, "arrays/weather")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer loaded.Close()

	if kind, err := loaded.Kind(); err != nil || kind != schema.Sparse {
		t.Errorf("Kind = %v, %v; want Sparse", kind, err)
	}
	if cap, err := loaded.Capacity(); err != nil || cap != 10000 {
		t.Errorf("Capacity = %d, %v; want 10000", cap, err)
	}
}
