package gscounting

import (
	"fmt"
	"strings"
)

// Dense is a contiguous row-major float32 buffer with a known shape.
// It is produced by CSR.Slice and owned by the caller thereafter.
type Dense struct {
	Nrows int
	Ncols int
	Data  []float32
}

// NewDense constructs a Dense, failing with ShapeMismatchError if
// len(data) != nrows*ncols.
func NewDense(nrows, ncols int, data []float32) (*Dense, error) {
	if nrows*ncols != len(data) {
		return nil, &ShapeMismatchError{Nrows: nrows, Ncols: ncols, Len: len(data)}
	}
	return &Dense{Nrows: nrows, Ncols: ncols, Data: data}, nil
}

// zeroDense allocates a zero-filled Dense of the given shape.
func zeroDense(nrows, ncols int) *Dense {
	return &Dense{Nrows: nrows, Ncols: ncols, Data: make([]float32, nrows*ncols)}
}

// At returns the element at row i, column j.
func (d *Dense) At(i, j int) float32 {
	return d.Data[i*d.Ncols+j]
}

// Equal reports whether d and other have identical shape and
// bit-exact data.
func (d *Dense) Equal(other *Dense) bool {
	if d.Nrows != other.Nrows || d.Ncols != other.Ncols {
		return false
	}
	if len(d.Data) != len(other.Data) {
		return false
	}
	for i := range d.Data {
		if d.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// String renders d row by row, for tests and debugging only; it is
// not part of the core contract.
func (d *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.Nrows; i++ {
		for j := 0; j < d.Ncols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", d.At(i, j))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
