package schema

import (
	"fmt"
	"strings"
)

// ArrayKind distinguishes dense and sparse arrays.
type ArrayKind uint8

const (
	Dense ArrayKind = iota
	Sparse
)

func (k ArrayKind) valid() bool {
	return k == Dense || k == Sparse
}

func (k ArrayKind) String() string {
	switch k {
	case Dense:
		return "Dense"
	case Sparse:
		return "Sparse"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseArrayKind returns the kind named by s (case-insensitive).
func ParseArrayKind(s string) (ArrayKind, error) {
	switch strings.ToLower(s) {
	case "dense":
		return Dense, nil
	case "sparse":
		return Sparse, nil
	}
	return 0, fmt.Errorf("unknown array kind %q", s)
}

// Layout governs the physical ordering of tiles, and of cells within a
// tile. Hilbert is valid for cell order only.
type Layout uint8

const (
	RowMajor Layout = iota
	ColMajor
	Hilbert
)

func (l Layout) valid() bool {
	return l <= Hilbert
}

func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	case Hilbert:
		return "hilbert"
	}
	return fmt.Sprintf("layout(%d)", uint8(l))
}

// ParseLayout returns the layout named by s (case-insensitive).
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "row-major", "row":
		return RowMajor, nil
	case "col-major", "col":
		return ColMajor, nil
	case "hilbert":
		return Hilbert, nil
	}
	return 0, fmt.Errorf("unknown layout %q", s)
}
