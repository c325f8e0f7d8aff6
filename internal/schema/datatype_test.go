package schema_test

import (
	"testing"

	"github.com/gridstore/gridstore/internal/schema"
)

func TestDatatypeSize(t *testing.T) {
	cases := map[schema.Datatype]int{
		schema.Int8:    1,
		schema.Uint16:  2,
		schema.Int32:   4,
		schema.Uint64:  8,
		schema.Float32: 4,
		schema.Float64: 8,
		schema.Char:    1,
	}
	for dt, want := range cases {
		if got := dt.Size(); got != want {
			t.Errorf("%s Size = %d, want %d", dt, got, want)
		}
	}
}

func TestDatatypeClassification(t *testing.T) {
	if !schema.Int64.IsInteger() || !schema.Int64.IsNumeric() {
		t.Error("int64 misclassified")
	}
	if !schema.Float32.IsFloat() || schema.Float32.IsInteger() {
		t.Error("float32 misclassified")
	}
	if schema.Char.IsNumeric() {
		t.Error("char classified as numeric")
	}
}

func TestParseDatatype(t *testing.T) {
	for _, name := range []string{"int8", "uint32", "float64", "char"} {
		dt, err := schema.ParseDatatype(name)
		if err != nil {
			t.Errorf("ParseDatatype(%q): %v", name, err)
			continue
		}
		if dt.String() != name {
			t.Errorf("ParseDatatype(%q).String() = %q", name, dt)
		}
	}
	if _, err := schema.ParseDatatype("decimal"); err == nil {
		t.Error("ParseDatatype accepted unknown name")
	}
}
