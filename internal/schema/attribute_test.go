package schema_test

import (
	"strings"
	"testing"

	"github.com/gridstore/gridstore/internal/schema"
)

func TestAttributeValidate(t *testing.T) {
	good := schema.NewAttribute("value", schema.Float32).
		WithCompressor(schema.Compressor{Kind: schema.GzipCompression, Level: 5})
	if err := good.Validate(); err != nil {
		t.Errorf("valid attribute rejected: %v", err)
	}

	if err := (schema.Attribute{Type: schema.Int8, CellValNum: 1}).Validate(); err == nil {
		t.Error("unnamed attribute passed validation")
	}
	if err := schema.NewAttribute("v", schema.Int8).WithCellValNum(0).Validate(); err == nil {
		t.Error("zero cell value count passed validation")
	}

	badLevel := schema.NewAttribute("v", schema.Int8).
		WithCompressor(schema.Compressor{Kind: schema.GzipCompression, Level: 42})
	if err := badLevel.Validate(); err == nil {
		t.Error("out-of-range level passed validation")
	}
}

func TestAttributeVarCellCompressorCompat(t *testing.T) {
	varText := schema.NewAttribute("name", schema.Char).WithCellValNum(schema.VarNum)

	if err := varText.WithCompressor(schema.Compressor{Kind: schema.SnappyCompression}).Validate(); err == nil {
		t.Error("snappy on variable-length cells passed validation")
	}
	if err := varText.WithCompressor(schema.Compressor{Kind: schema.ZstdCompression, Level: 3}).Validate(); err != nil {
		t.Errorf("zstd on variable-length cells rejected: %v", err)
	}
}

func TestAttributeString(t *testing.T) {
	a := schema.NewAttribute("value", schema.Float32).
		WithCompressor(schema.Compressor{Kind: schema.GzipCompression, Level: 5})
	s := a.String()
	for _, want := range []string{"value", "float32", "Gzip:5"} {
		if !strings.Contains(s, want) {
			t.Errorf("Attribute String %q missing %q", s, want)
		}
	}
	if v := a.WithCellValNum(schema.VarNum).String(); !strings.Contains(v, "var") {
		t.Errorf("variable-length attribute String %q missing var marker", v)
	}
}
