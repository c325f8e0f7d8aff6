package schema_test

import (
	"bytes"
	"testing"

	"github.com/gridstore/gridstore/internal/schema"
)

func TestCompressorValidate(t *testing.T) {
	cases := []struct {
		comp schema.Compressor
		ok   bool
	}{
		{schema.Compressor{Kind: schema.NoCompression}, true},
		{schema.Compressor{Kind: schema.NoCompression, Level: 1}, false},
		{schema.Compressor{Kind: schema.GzipCompression, Level: 5}, true},
		{schema.Compressor{Kind: schema.GzipCompression, Level: 10}, false},
		{schema.Compressor{Kind: schema.GzipCompression, Level: -1}, false},
		{schema.Compressor{Kind: schema.ZlibCompression, Level: 9}, true},
		{schema.Compressor{Kind: schema.ZstdCompression, Level: 22}, true},
		{schema.Compressor{Kind: schema.ZstdCompression, Level: 23}, false},
		{schema.Compressor{Kind: schema.SnappyCompression}, true},
		{schema.Compressor{Kind: schema.SnappyCompression, Level: 2}, false},
		{schema.Compressor{Kind: schema.S2Compression}, true},
		{schema.Compressor{Kind: schema.CompressorKind(200)}, false},
	}
	for _, tc := range cases {
		err := tc.comp.Validate()
		if tc.ok && err != nil {
			t.Errorf("%v: unexpected error %v", tc.comp, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%v: expected validation error", tc.comp)
		}
	}
}

func TestCompressorRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("tile data tile data "), 200)
	comps := []schema.Compressor{
		{Kind: schema.NoCompression},
		{Kind: schema.GzipCompression, Level: 5},
		{Kind: schema.ZlibCompression, Level: 6},
		{Kind: schema.ZstdCompression, Level: 3},
		{Kind: schema.SnappyCompression},
		{Kind: schema.S2Compression},
	}
	for _, c := range comps {
		t.Run(c.String(), func(t *testing.T) {
			packed, err := c.Compress(src)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if c.Kind != schema.NoCompression && len(packed) >= len(src) {
				t.Errorf("compressed %d bytes to %d, no reduction on repetitive input", len(src), len(packed))
			}
			got, err := c.Decompress(packed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(got, src) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestParseCompressorKind(t *testing.T) {
	for _, name := range []string{"none", "Gzip", "ZLIB", "zstd", "snappy", "s2"} {
		if _, err := schema.ParseCompressorKind(name); err != nil {
			t.Errorf("ParseCompressorKind(%q): %v", name, err)
		}
	}
	if _, err := schema.ParseCompressorKind("lz77"); err == nil {
		t.Error("ParseCompressorKind accepted unknown name")
	}
}

func TestSupportsVarCells(t *testing.T) {
	if (schema.Compressor{Kind: schema.SnappyCompression}).SupportsVarCells() {
		t.Error("snappy reports var-cell support")
	}
	if !(schema.Compressor{Kind: schema.GzipCompression, Level: 5}).SupportsVarCells() {
		t.Error("gzip reports no var-cell support")
	}
}

func TestCompressorString(t *testing.T) {
	cases := map[string]schema.Compressor{
		"None":   {Kind: schema.NoCompression},
		"Gzip:5": {Kind: schema.GzipCompression, Level: 5},
		"Zstd":   {Kind: schema.ZstdCompression},
	}
	for want, comp := range cases {
		if got := comp.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
