// Package schema models how a tiled multi-dimensional array is laid out,
// compressed, and validated before any data is written or read. The
// ArraySchema aggregate is the single source of truth that tile writers,
// query planners, and consistency checks depend on.
package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gridstore/gridstore/internal/backend"
)

// DefaultCapacity is the default number of cells per sparse data tile.
const DefaultCapacity = 10000

// schemaData is the underlying schema representation shared between
// handles. Access goes through the owning Handle's lock.
type schemaData struct {
	uri          string
	kind         ArrayKind
	capacity     uint64
	tileOrder    Layout
	cellOrder    Layout
	coordComp    Compressor
	offsetComp   Compressor
	domain       *Domain
	attrs        []Attribute // on-disk field order
	kv           bool
	materialized bool
}

func (d *schemaData) attribute(name string) (Attribute, bool) {
	for _, a := range d.attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

func (d *schemaData) putAttribute(a Attribute) {
	for i := range d.attrs {
		if d.attrs[i].Name == a.Name {
			d.attrs[i] = a
			return
		}
	}
	d.attrs = append(d.attrs, a)
}

// Handle is the reference-counted underlying schema representation.
// Multiple ArraySchema values may share one Handle; the last release
// frees it exactly once.
type Handle struct {
	refs atomic.Int32
	mu   sync.RWMutex
	data schemaData
}

func newHandle(data schemaData) *Handle {
	h := &Handle{data: data}
	h.refs.Store(1)
	return h
}

func defaultData() schemaData {
	return schemaData{
		kind:       Dense,
		capacity:   DefaultCapacity,
		tileOrder:  RowMajor,
		cellOrder:  RowMajor,
		coordComp:  Compressor{Kind: ZstdCompression},
		offsetComp: Compressor{Kind: ZstdCompression},
	}
}

func (h *Handle) retain() {
	h.refs.Add(1)
}

func (h *Handle) release() {
	if h.refs.Add(-1) == 0 {
		// Last owner: drop the representation so stale pointers cannot
		// alias freed schema state.
		h.mu.Lock()
		h.data = schemaData{}
		h.mu.Unlock()
	}
}

// ArraySchema aggregates one Domain, zero or more Attributes, an array
// kind, tile/cell ordering, sparse-tile capacity, and the coordinate and
// offset compressors.
//
// A schema starts unbound; any setter, Create, Load, or FromHandle binds
// it to an underlying representation. Getters require the bound state.
// Configuration is single-writer: setters must not race each other, but
// getters may be called concurrently from any number of shared handles.
type ArraySchema struct {
	ctx *Context
	h   *Handle
}

// New returns an unbound schema tied to ctx for error reporting.
func New(ctx *Context) *ArraySchema {
	return &ArraySchema{ctx: ctx}
}

// FromHandle takes ownership of a live schema handle. The caller's
// reference is nulled; this is a move, not a borrow.
func FromHandle(ctx *Context, h **Handle) *ArraySchema {
	s := &ArraySchema{ctx: ctx}
	if h != nil && *h != nil {
		s.h = *h
		*h = nil
	}
	return s
}

// Load fetches and binds the persisted schema of the existing array at
// uri. Fails with ErrNotFound if no array exists there, ErrInvalidSchema
// if the persisted bytes do not parse.
func Load(ctx *Context, uri string) (*ArraySchema, error) {
	blob, err := ctx.backend.Fetch(uri)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			err = fmt.Errorf("%w: %s", ErrNotFound, uri)
		} else {
			err = fmt.Errorf("fetch %s: %w", uri, err)
		}
		return nil, ctx.report("load", err)
	}
	data, err := decodeSchema(blob)
	if err != nil {
		return nil, ctx.report("load", fmt.Errorf("%s: %w", uri, err))
	}
	data.uri = uri
	data.materialized = true
	return &ArraySchema{ctx: ctx, h: newHandle(*data)}, nil
}

// Create validates the configured schema and persists it as a new array
// at uri. Fails with a ValidationError if invariants are violated, or
// ErrAlreadyExists if an array is already materialized there. Returns the
// schema to support chaining.
func (s *ArraySchema) Create(uri string) (*ArraySchema, error) {
	if err := s.Check(); err != nil {
		return nil, err // already reported
	}
	h := s.h // Check guarantees a bound, valid representation

	h.mu.RLock()
	snapshot := h.data
	h.mu.RUnlock()

	blob, err := encodeSchema(&snapshot, s.ctx.blobComp)
	if err != nil {
		return nil, s.ctx.report("create", fmt.Errorf("encode schema: %w", err))
	}
	if err := s.ctx.backend.Materialize(uri, blob); err != nil {
		if errors.Is(err, backend.ErrExists) {
			err = fmt.Errorf("%w: %s", ErrAlreadyExists, uri)
		} else {
			err = fmt.Errorf("materialize %s: %w", uri, err)
		}
		return nil, s.ctx.report("create", err)
	}

	h.mu.Lock()
	h.data.uri = uri
	h.data.materialized = true
	h.mu.Unlock()
	return s, nil
}

// Good reports whether an underlying representation exists.
func (s *ArraySchema) Good() bool {
	return s.h != nil
}

// Handle returns the underlying representation without transferring
// ownership, or nil if the schema is unbound.
func (s *ArraySchema) Handle() *Handle {
	return s.h
}

// Context returns the bound storage context.
func (s *ArraySchema) Context() *Context {
	return s.ctx
}

// Share returns a new schema referencing the same underlying
// representation. Both must be closed independently.
func (s *ArraySchema) Share() *ArraySchema {
	if s.h != nil {
		s.h.retain()
	}
	return &ArraySchema{ctx: s.ctx, h: s.h}
}

// Close releases this schema's reference to the underlying
// representation. Safe to call more than once.
func (s *ArraySchema) Close() error {
	if s.h != nil {
		s.h.release()
		s.h = nil
	}
	return nil
}

// ensure lazily binds an in-memory representation so setters work on a
// fresh schema.
func (s *ArraySchema) ensure() *Handle {
	if s.h == nil {
		s.h = newHandle(defaultData())
	}
	return s.h
}

func (s *ArraySchema) set(fn func(d *schemaData)) *ArraySchema {
	h := s.ensure()
	h.mu.Lock()
	fn(&h.data)
	h.mu.Unlock()
	return s
}

// get runs fn against the bound representation under the read lock, or
// returns ErrNotInitialized if the schema is unbound.
func (s *ArraySchema) get(op string, fn func(d *schemaData)) error {
	if s.h == nil {
		return s.ctx.report(op, ErrNotInitialized)
	}
	s.h.mu.RLock()
	fn(&s.h.data)
	s.h.mu.RUnlock()
	return nil
}

// SetKind sets the array kind. Immutable once the array is materialized
// on persistent storage; Check rejects nothing here, mutation before
// Create is free.
func (s *ArraySchema) SetKind(k ArrayKind) *ArraySchema {
	return s.set(func(d *schemaData) { d.kind = k })
}

// Kind returns the array kind.
func (s *ArraySchema) Kind() (ArrayKind, error) {
	var k ArrayKind
	err := s.get("kind", func(d *schemaData) { k = d.kind })
	return k, err
}

// SetCapacity sets the number of cells per data tile for a sparse array.
// On a dense schema the value is stored but ignored by validation.
func (s *ArraySchema) SetCapacity(capacity uint64) *ArraySchema {
	return s.set(func(d *schemaData) { d.capacity = capacity })
}

// Capacity returns the sparse-tile capacity.
func (s *ArraySchema) Capacity() (uint64, error) {
	var c uint64
	err := s.get("capacity", func(d *schemaData) { c = d.capacity })
	return c, err
}

// SetTileOrder sets the physical ordering of tiles.
func (s *ArraySchema) SetTileOrder(l Layout) *ArraySchema {
	return s.set(func(d *schemaData) { d.tileOrder = l })
}

// TileOrder returns the tile ordering.
func (s *ArraySchema) TileOrder() (Layout, error) {
	var l Layout
	err := s.get("tile_order", func(d *schemaData) { l = d.tileOrder })
	return l, err
}

// SetCellOrder sets the ordering of cells within a tile.
func (s *ArraySchema) SetCellOrder(l Layout) *ArraySchema {
	return s.set(func(d *schemaData) { d.cellOrder = l })
}

// CellOrder returns the cell ordering.
func (s *ArraySchema) CellOrder() (Layout, error) {
	var l Layout
	err := s.get("cell_order", func(d *schemaData) { l = d.cellOrder })
	return l, err
}

// SetOrder sets tile and cell orderings in a single critical section, so
// a concurrent reader of the same representation never observes one
// without the other.
func (s *ArraySchema) SetOrder(tile, cell Layout) *ArraySchema {
	return s.set(func(d *schemaData) {
		d.tileOrder = tile
		d.cellOrder = cell
	})
}

// Order returns the tile and cell orderings as one consistent pair.
func (s *ArraySchema) Order() (tile, cell Layout, err error) {
	err = s.get("order", func(d *schemaData) {
		tile = d.tileOrder
		cell = d.cellOrder
	})
	return tile, cell, err
}

// SetCoordCompressor sets the compressor applied to coordinate data.
func (s *ArraySchema) SetCoordCompressor(c Compressor) *ArraySchema {
	return s.set(func(d *schemaData) { d.coordComp = c })
}

// CoordCompressor returns the coordinate compressor.
func (s *ArraySchema) CoordCompressor() (Compressor, error) {
	var c Compressor
	err := s.get("coord_compressor", func(d *schemaData) { c = d.coordComp })
	return c, err
}

// SetOffsetCompressor sets the compressor applied to variable-length
// attribute offsets.
func (s *ArraySchema) SetOffsetCompressor(c Compressor) *ArraySchema {
	return s.set(func(d *schemaData) { d.offsetComp = c })
}

// OffsetCompressor returns the offset compressor.
func (s *ArraySchema) OffsetCompressor() (Compressor, error) {
	var c Compressor
	err := s.get("offset_compressor", func(d *schemaData) { c = d.offsetComp })
	return c, err
}

// SetDomain replaces the current domain with a copy of d. Last write
// wins; domains are never merged.
func (s *ArraySchema) SetDomain(d *Domain) *ArraySchema {
	clone := d.clone()
	return s.set(func(sd *schemaData) { sd.domain = clone })
}

// Domain returns a copy of the schema's domain.
func (s *ArraySchema) Domain() (*Domain, error) {
	var d *Domain
	err := s.get("domain", func(sd *schemaData) { d = sd.domain.clone() })
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, s.ctx.report("domain", fmt.Errorf("%w: no domain set", ErrNotInitialized))
	}
	return d, nil
}

// AddAttribute inserts attr, replacing any prior attribute of the same
// name. Name collisions with dimensions are a Check-time concern.
func (s *ArraySchema) AddAttribute(attr Attribute) *ArraySchema {
	return s.set(func(d *schemaData) { d.putAttribute(attr) })
}

// Attributes returns the attributes keyed by name.
func (s *ArraySchema) Attributes() (map[string]Attribute, error) {
	var m map[string]Attribute
	err := s.get("attributes", func(d *schemaData) {
		m = make(map[string]Attribute, len(d.attrs))
		for _, a := range d.attrs {
			m[a.Name] = a
		}
	})
	return m, err
}

// Attribute returns the attribute named name.
func (s *ArraySchema) Attribute(name string) (Attribute, bool, error) {
	var (
		a  Attribute
		ok bool
	)
	err := s.get("attribute", func(d *schemaData) { a, ok = d.attribute(name) })
	return a, ok, err
}

// URI returns the array location the schema was materialized at, empty
// before Create/Load.
func (s *ArraySchema) URI() (string, error) {
	var uri string
	err := s.get("uri", func(d *schemaData) { uri = d.uri })
	return uri, err
}

// Dump renders the bound schema deterministically for debugging and
// logging. Not a persistence format.
func (s *ArraySchema) Dump() (string, error) {
	var b strings.Builder
	err := s.get("dump", func(d *schemaData) {
		b.WriteString("ArraySchema(\n")
		if d.uri != "" {
			fmt.Fprintf(&b, "  uri: %s\n", d.uri)
		}
		fmt.Fprintf(&b, "  kind: %s\n", d.kind)
		fmt.Fprintf(&b, "  capacity: %d\n", d.capacity)
		fmt.Fprintf(&b, "  tile_order: %s\n", d.tileOrder)
		fmt.Fprintf(&b, "  cell_order: %s\n", d.cellOrder)
		fmt.Fprintf(&b, "  coords: %s\n", d.coordComp)
		fmt.Fprintf(&b, "  offsets: %s\n", d.offsetComp)
		if d.domain != nil {
			fmt.Fprintf(&b, "  domain: %s tiles=%d\n", d.domain, d.domain.TileCount())
		} else {
			b.WriteString("  domain: <unset>\n")
		}
		for _, a := range d.attrs {
			fmt.Fprintf(&b, "  attribute: %s\n", a)
		}
		if d.kv {
			b.WriteString("  kv: true\n")
		}
		b.WriteString(")")
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// String implements fmt.Stringer; unbound schemas render as a
// placeholder.
func (s *ArraySchema) String() string {
	out, err := s.Dump()
	if err != nil {
		return "ArraySchema(<unbound>)"
	}
	return out
}
