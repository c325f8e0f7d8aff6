package schema

import "fmt"

// Datatype identifies the cell type of a dimension or attribute.
type Datatype uint8

const (
	Int8 Datatype = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Char
)

var datatypeNames = [...]string{
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Char:    "char",
}

var datatypeSizes = [...]int{
	Int8:    1,
	Int16:   2,
	Int32:   4,
	Int64:   8,
	Uint8:   1,
	Uint16:  2,
	Uint32:  4,
	Uint64:  8,
	Float32: 4,
	Float64: 8,
	Char:    1,
}

func (d Datatype) valid() bool {
	return int(d) < len(datatypeNames)
}

func (d Datatype) String() string {
	if !d.valid() {
		return fmt.Sprintf("datatype(%d)", uint8(d))
	}
	return datatypeNames[d]
}

// Size returns the size of one cell value in bytes.
func (d Datatype) Size() int {
	if !d.valid() {
		return 0
	}
	return datatypeSizes[d]
}

// IsInteger reports whether d is a signed or unsigned integer type.
func (d Datatype) IsInteger() bool {
	return d >= Int8 && d <= Uint64
}

// IsFloat reports whether d is a floating point type.
func (d Datatype) IsFloat() bool {
	return d == Float32 || d == Float64
}

// IsNumeric reports whether d can be used as a coordinate type.
func (d Datatype) IsNumeric() bool {
	return d.IsInteger() || d.IsFloat()
}

// ParseDatatype returns the Datatype named by s.
func ParseDatatype(s string) (Datatype, error) {
	for i, name := range datatypeNames {
		if name == s {
			return Datatype(i), nil
		}
	}
	return 0, fmt.Errorf("unknown datatype %q", s)
}
