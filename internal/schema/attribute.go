package schema

import (
	"fmt"
	"math"
)

// VarNum marks an attribute as variable-length (one offset per cell).
const VarNum uint32 = math.MaxUint32

// Attribute is a named, typed data field stored alongside the
// coordinates, with its own compression.
type Attribute struct {
	Name       string
	Type       Datatype
	CellValNum uint32 // values per cell; VarNum for variable-length
	Compressor Compressor
}

// NewAttribute returns a single-value, uncompressed attribute.
func NewAttribute(name string, t Datatype) Attribute {
	return Attribute{Name: name, Type: t, CellValNum: 1}
}

// WithCompressor returns a copy of a with the given compressor.
func (a Attribute) WithCompressor(c Compressor) Attribute {
	a.Compressor = c
	return a
}

// WithCellValNum returns a copy of a holding n values per cell.
func (a Attribute) WithCellValNum(n uint32) Attribute {
	a.CellValNum = n
	return a
}

// Validate checks the attribute in isolation.
func (a Attribute) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("attribute has no name")
	}
	if !a.Type.valid() {
		return fmt.Errorf("attribute %q: unknown type %d", a.Name, uint8(a.Type))
	}
	if a.CellValNum == 0 {
		return fmt.Errorf("attribute %q: cell value count is zero", a.Name)
	}
	if err := a.Compressor.Validate(); err != nil {
		return fmt.Errorf("attribute %q: %w", a.Name, err)
	}
	if a.CellValNum == VarNum && !a.Compressor.SupportsVarCells() {
		return fmt.Errorf("attribute %q: %s cannot compress variable-length cells",
			a.Name, a.Compressor.Kind)
	}
	return nil
}

func (a Attribute) String() string {
	cells := fmt.Sprintf("%d", a.CellValNum)
	if a.CellValNum == VarNum {
		cells = "var"
	}
	return fmt.Sprintf("%s %s[%s] %s", a.Name, a.Type, cells, a.Compressor)
}
