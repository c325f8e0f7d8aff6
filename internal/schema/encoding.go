package schema

import (
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Persisted blob layout: an 8-byte header followed by the compressed
// msgpack body.
//
//	[0:4]  magic "GSAS"
//	[4]    format version
//	[5]    body compressor kind
//	[6:8]  body compressor level (int16, big endian)
const (
	schemaHeaderSize    = 8
	schemaFormatVersion = 1
)

var schemaMagic = [4]byte{'G', 'S', 'A', 'S'}

type persistedDimension struct {
	Name   string `msgpack:"name"`
	Type   uint8  `msgpack:"type"`
	Min    int64  `msgpack:"min"`
	Max    int64  `msgpack:"max"`
	Extent int64  `msgpack:"extent"`
}

type persistedAttribute struct {
	Name       string `msgpack:"name"`
	Type       uint8  `msgpack:"type"`
	CellValNum uint32 `msgpack:"cell_val_num"`
	CompKind   uint8  `msgpack:"comp_kind"`
	CompLevel  int    `msgpack:"comp_level"`
}

type persistedSchema struct {
	Kind        uint8                `msgpack:"kind"`
	Capacity    uint64               `msgpack:"capacity"`
	TileOrder   uint8                `msgpack:"tile_order"`
	CellOrder   uint8                `msgpack:"cell_order"`
	CoordKind   uint8                `msgpack:"coord_kind"`
	CoordLevel  int                  `msgpack:"coord_level"`
	OffsetKind  uint8                `msgpack:"offset_kind"`
	OffsetLevel int                  `msgpack:"offset_level"`
	KV          bool                 `msgpack:"kv"`
	Dims        []persistedDimension `msgpack:"dims"`
	Attrs       []persistedAttribute `msgpack:"attrs"`
}

// encodeSchema serializes d into the persisted blob form, compressing the
// body with blobComp.
func encodeSchema(d *schemaData, blobComp Compressor) ([]byte, error) {
	rec := persistedSchema{
		Kind:        uint8(d.kind),
		Capacity:    d.capacity,
		TileOrder:   uint8(d.tileOrder),
		CellOrder:   uint8(d.cellOrder),
		CoordKind:   uint8(d.coordComp.Kind),
		CoordLevel:  d.coordComp.Level,
		OffsetKind:  uint8(d.offsetComp.Kind),
		OffsetLevel: d.offsetComp.Level,
		KV:          d.kv,
	}
	if d.domain != nil {
		for _, dim := range d.domain.Dimensions() {
			rec.Dims = append(rec.Dims, persistedDimension{
				Name:   dim.Name,
				Type:   uint8(dim.Type),
				Min:    dim.Min,
				Max:    dim.Max,
				Extent: dim.Extent,
			})
		}
	}
	for _, a := range d.attrs {
		rec.Attrs = append(rec.Attrs, persistedAttribute{
			Name:       a.Name,
			Type:       uint8(a.Type),
			CellValNum: a.CellValNum,
			CompKind:   uint8(a.Compressor.Kind),
			CompLevel:  a.Compressor.Level,
		})
	}

	body, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compressed, err := blobComp.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("compress schema body: %w", err)
	}

	blob := make([]byte, schemaHeaderSize, schemaHeaderSize+len(compressed))
	copy(blob[0:4], schemaMagic[:])
	blob[4] = schemaFormatVersion
	blob[5] = uint8(blobComp.Kind)
	binary.BigEndian.PutUint16(blob[6:8], uint16(int16(blobComp.Level)))
	return append(blob, compressed...), nil
}

// decodeSchema rehydrates a schema representation from the persisted
// blob. All parse failures come back as ErrInvalidSchema.
func decodeSchema(blob []byte) (*schemaData, error) {
	if len(blob) < schemaHeaderSize {
		return nil, fmt.Errorf("%w: blob too short (%d bytes)", ErrInvalidSchema, len(blob))
	}
	if [4]byte(blob[0:4]) != schemaMagic {
		return nil, fmt.Errorf("%w: bad magic %x", ErrInvalidSchema, blob[0:4])
	}
	if blob[4] != schemaFormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrInvalidSchema, blob[4])
	}
	blobComp := Compressor{
		Kind:  CompressorKind(blob[5]),
		Level: int(int16(binary.BigEndian.Uint16(blob[6:8]))),
	}
	if err := blobComp.Validate(); err != nil {
		return nil, fmt.Errorf("%w: body compressor: %v", ErrInvalidSchema, err)
	}

	body, err := blobComp.Decompress(blob[schemaHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: decompress body: %v", ErrInvalidSchema, err)
	}
	var rec persistedSchema
	if err := msgpack.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: unmarshal body: %v", ErrInvalidSchema, err)
	}

	d := &schemaData{
		kind:       ArrayKind(rec.Kind),
		capacity:   rec.Capacity,
		tileOrder:  Layout(rec.TileOrder),
		cellOrder:  Layout(rec.CellOrder),
		coordComp:  Compressor{Kind: CompressorKind(rec.CoordKind), Level: rec.CoordLevel},
		offsetComp: Compressor{Kind: CompressorKind(rec.OffsetKind), Level: rec.OffsetLevel},
		kv:         rec.KV,
	}
	if len(rec.Dims) > 0 {
		d.domain = &Domain{}
		for _, dim := range rec.Dims {
			d.domain.AddDimension(Dimension{
				Name:   dim.Name,
				Type:   Datatype(dim.Type),
				Min:    dim.Min,
				Max:    dim.Max,
				Extent: dim.Extent,
			})
		}
	}
	for _, a := range rec.Attrs {
		d.putAttribute(Attribute{
			Name:       a.Name,
			Type:       Datatype(a.Type),
			CellValNum: a.CellValNum,
			Compressor: Compressor{Kind: CompressorKind(a.CompKind), Level: a.CompLevel},
		})
	}

	if verr := checkData(d); verr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, verr)
	}
	return d, nil
}
