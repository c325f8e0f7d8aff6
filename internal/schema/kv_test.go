package schema_test

import (
	"math"
	"testing"

	"github.com/gridstore/gridstore/internal/schema"
)

func TestSetKV(t *testing.T) {
	ctx := newTestContext(t)
	s := schema.New(ctx).
		AddAttribute(schema.NewAttribute("value", schema.Char).
			WithCellValNum(schema.VarNum)).
		SetKV()
	defer s.Close()

	kv, err := s.IsKV()
	if err != nil {
		t.Fatalf("IsKV: %v", err)
	}
	if !kv {
		t.Error("IsKV = false after SetKV")
	}

	if kind, _ := s.Kind(); kind != schema.Sparse {
		t.Errorf("kv schema kind = %s, want Sparse", kind)
	}
	dom, err := s.Domain()
	if err != nil {
		t.Fatalf("Domain: %v", err)
	}
	if dom.NDim() != 2 {
		t.Errorf("kv domain has %d dimensions, want 2", dom.NDim())
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check on kv schema: %v", err)
	}

	// Attributes configured before SetKV survive.
	attrs, err := s.Attributes()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := attrs["value"]; !ok {
		t.Error("SetKV dropped the configured attribute")
	}
}

func TestIsKVWithoutSetKV(t *testing.T) {
	ctx := newTestContext(t)

	plain := newWeatherSchema(ctx)
	defer plain.Close()
	if kv, err := plain.IsKV(); err != nil || kv {
		t.Errorf("plain schema IsKV = %v, %v; want false", kv, err)
	}

	// A hand-built schema that happens to match the kv convention reads
	// as kv even though SetKV was never called.
	dim := schema.Dimension{
		Type: schema.Uint64, Min: 0, Max: math.MaxInt64 - 1, Extent: math.MaxInt64,
	}
	d1, d2 := dim, dim
	d1.Name = "__kv_key_1"
	d2.Name = "__kv_key_2"
	shaped := schema.New(ctx).
		SetKind(schema.Sparse).
		SetDomain(schema.NewDomain(d1, d2))
	defer shaped.Close()

	if kv, err := shaped.IsKV(); err != nil || !kv {
		t.Errorf("kv-shaped schema IsKV = %v, %v; want true", kv, err)
	}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	s := schema.New(ctx).SetKV()
	defer s.Close()

	if _, err := s.Create("arrays/kvstore"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	loaded, err := schema.Load(ctx, "arrays/kvstore")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer loaded.Close()

	if kv, err := loaded.IsKV(); err != nil || !kv {
		t.Errorf("loaded IsKV = %v, %v; want true", kv, err)
	}
}
