package schema

import (
	"fmt"
	"strings"
)

// Dimension is one axis of an array's coordinate space: a named value
// range divided into tiles of a fixed extent.
type Dimension struct {
	Name   string
	Type   Datatype
	Min    int64
	Max    int64
	Extent int64
}

// Validate checks the dimension in isolation.
func (d Dimension) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dimension has no name")
	}
	if !d.Type.IsNumeric() {
		return fmt.Errorf("dimension %q: type %s is not numeric", d.Name, d.Type)
	}
	if d.Min > d.Max {
		return fmt.Errorf("dimension %q: range [%d,%d] is inverted", d.Name, d.Min, d.Max)
	}
	span := d.Max - d.Min + 1
	if d.Extent <= 0 || d.Extent > span {
		return fmt.Errorf("dimension %q: tile extent %d out of range (0,%d]", d.Name, d.Extent, span)
	}
	return nil
}

// TileCount returns the number of tiles along this dimension.
func (d Dimension) TileCount() int64 {
	span := d.Max - d.Min + 1
	n := span / d.Extent
	if span%d.Extent != 0 {
		n++
	}
	return n
}

func (d Dimension) String() string {
	return fmt.Sprintf("%s=[%d,%d]/%d", d.Name, d.Min, d.Max, d.Extent)
}

// Domain is the ordered set of dimensions defining an array's coordinate
// space.
type Domain struct {
	dims []Dimension
}

// NewDomain returns a domain over the given dimensions, in order.
func NewDomain(dims ...Dimension) *Domain {
	d := &Domain{}
	for _, dim := range dims {
		d.AddDimension(dim)
	}
	return d
}

// AddDimension appends dim, replacing any existing dimension of the same
// name in place.
func (d *Domain) AddDimension(dim Dimension) *Domain {
	for i := range d.dims {
		if d.dims[i].Name == dim.Name {
			d.dims[i] = dim
			return d
		}
	}
	d.dims = append(d.dims, dim)
	return d
}

// NDim returns the number of dimensions.
func (d *Domain) NDim() int {
	return len(d.dims)
}

// Dimensions returns the dimensions in order. The slice is a copy.
func (d *Domain) Dimensions() []Dimension {
	return append([]Dimension(nil), d.dims...)
}

// Dimension returns the dimension named name.
func (d *Domain) Dimension(name string) (Dimension, bool) {
	for _, dim := range d.dims {
		if dim.Name == name {
			return dim, true
		}
	}
	return Dimension{}, false
}

// Type returns the shared coordinate type of the domain.
func (d *Domain) Type() Datatype {
	if len(d.dims) == 0 {
		return 0
	}
	return d.dims[0].Type
}

// TileCount returns the total number of tiles in the domain.
func (d *Domain) TileCount() int64 {
	if len(d.dims) == 0 {
		return 0
	}
	n := int64(1)
	for _, dim := range d.dims {
		n *= dim.TileCount()
	}
	return n
}

// Validate checks every dimension plus the domain-wide rules: at least one
// dimension and a single shared coordinate type.
func (d *Domain) Validate() error {
	if len(d.dims) == 0 {
		return fmt.Errorf("domain has no dimensions")
	}
	for _, dim := range d.dims {
		if err := dim.Validate(); err != nil {
			return err
		}
		if dim.Type != d.dims[0].Type {
			return fmt.Errorf("dimension %q: type %s differs from domain type %s",
				dim.Name, dim.Type, d.dims[0].Type)
		}
	}
	return nil
}

func (d *Domain) String() string {
	parts := make([]string, len(d.dims))
	for i, dim := range d.dims {
		parts[i] = dim.String()
	}
	return fmt.Sprintf("%s [%s]", d.Type(), strings.Join(parts, " "))
}

// clone returns a deep copy so shared schema state never aliases a
// caller-held domain.
func (d *Domain) clone() *Domain {
	if d == nil {
		return nil
	}
	return &Domain{dims: append([]Dimension(nil), d.dims...)}
}
