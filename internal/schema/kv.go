package schema

import (
	"math"
	"strings"
)

// Key-value mode stores keys hashed into two 64-bit halves, one
// reserved dimension per half. The shape below is the canonical form
// SetKV produces and IsKV recognizes.
const (
	kvReservedPrefix = "__kv_"
	kvKeyDim1        = "__kv_key_1"
	kvKeyDim2        = "__kv_key_2"
)

func isReservedName(name string) bool {
	return strings.HasPrefix(name, kvReservedPrefix)
}

func kvDomain() *Domain {
	// One tile spanning the whole hash space. Max stops one short of
	// MaxInt64 so the span fits in int64.
	dim := Dimension{
		Type:   Uint64,
		Min:    0,
		Max:    math.MaxInt64 - 1,
		Extent: math.MaxInt64,
	}
	d1, d2 := dim, dim
	d1.Name = kvKeyDim1
	d2.Name = kvKeyDim2
	return NewDomain(d1, d2)
}

// SetKV mutates the schema into the canonical key-value shape: sparse
// kind, row-major orders, and the reserved two-dimension hash domain.
// Attributes already configured are kept. This is sugar over the plain
// setters, not a distinct schema type.
func (s *ArraySchema) SetKV() *ArraySchema {
	return s.set(func(d *schemaData) {
		d.kind = Sparse
		d.tileOrder = RowMajor
		d.cellOrder = RowMajor
		d.domain = kvDomain()
		d.kv = true
	})
}

// IsKV reports whether the schema has the key-value shape, whether it got
// there via SetKV or by hand.
func (s *ArraySchema) IsKV() (bool, error) {
	var kv bool
	err := s.get("is_kv", func(d *schemaData) { kv = d.kv || matchesKVShape(d) })
	return kv, err
}

func matchesKVShape(d *schemaData) bool {
	if d.kind != Sparse || d.domain == nil || d.domain.NDim() != 2 {
		return false
	}
	dims := d.domain.Dimensions()
	return dims[0].Name == kvKeyDim1 && dims[1].Name == kvKeyDim2
}
