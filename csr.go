package gscounting

// CSR is a Compressed Sparse Row matrix: data (sequence of values),
// indices (column indices per non-zero), indptr (row-start offsets),
// and shape (nrows, ncols). Row i's non-zero columns are
// indices[indptr[i]:indptr[i+1]] with values data[indptr[i]:indptr[i+1]].
// A CSR is immutable after construction; it may be read concurrently
// but never mutated.
type CSR struct {
	data    []float32
	indices []uint32
	indptr  []uint32
	nrows   int
	ncols   int
}

// New constructs a CSR, taking ownership of data, indices and indptr
// (callers that need to retain their slices must copy them first).
// nrows and ncols are optional: supply both to validate an explicit
// shape, or neither to infer nrows := len(indptr)-1 and
// ncols := max(indices)+1. Supplying exactly one is an error.
//
// On any invariant violation New fails with *InvalidCSRError.
func New(data []float32, indices []uint32, indptr []uint32, shape ...int) (*CSR, error) {
	var nrows, ncols int
	haveShape := false

	switch len(shape) {
	case 0:
		// inferred below
	case 2:
		nrows, ncols = shape[0], shape[1]
		if (nrows == 0) != (ncols == 0) {
			return nil, &InvalidCSRError{Reason: "nrows and ncols must both be supplied or both be omitted"}
		}
		// Both-zero means the caller omitted the shape through the
		// variadic form (e.g. forwarding a loaded header of (0, 0));
		// treat it the same as supplying neither and infer below.
		haveShape = nrows != 0 || ncols != 0
	default:
		return nil, &InvalidCSRError{Reason: "shape must be given as either zero or two values (nrows, ncols)"}
	}

	if len(indices) == 0 {
		return nil, &InvalidCSRError{Reason: "indices array is empty"}
	}
	if len(indptr) == 0 {
		return nil, &InvalidCSRError{Reason: "index pointer array is empty"}
	}
	if indptr[0] != 0 {
		return nil, &InvalidCSRError{Reason: "index pointer array should start with 0"}
	}
	if len(data) != len(indices) {
		return nil, &InvalidCSRError{Reason: "indices and data arrays should have same size"}
	}
	if int(indptr[len(indptr)-1]) > len(indices) {
		return nil, &InvalidCSRError{Reason: "last value of index pointer should not exceed the size of index and data arrays"}
	}
	for i := 1; i < len(indptr); i++ {
		if indptr[i] < indptr[i-1] {
			return nil, &InvalidCSRError{Reason: "index pointer values must form a non-decreasing sequence"}
		}
	}

	maxIndex := indices[0]
	for _, ix := range indices {
		if ix > maxIndex {
			maxIndex = ix
		}
	}

	if haveShape {
		if len(indptr)-1 > nrows {
			return nil, &InvalidCSRError{Reason: "index pointer implies more rows than the supplied nrows"}
		}
		if int(maxIndex)+1 > ncols {
			return nil, &InvalidCSRError{Reason: "indices reference a column beyond the supplied ncols"}
		}
	} else {
		nrows = len(indptr) - 1
		ncols = int(maxIndex) + 1
	}

	return &CSR{data: data, indices: indices, indptr: indptr, nrows: nrows, ncols: ncols}, nil
}

// Nrows returns the number of rows, explicit or inferred.
func (c *CSR) Nrows() int { return c.nrows }

// Ncols returns the number of columns, explicit or inferred.
func (c *CSR) Ncols() int { return c.ncols }

// NNZ returns the number of stored (non-zero) values.
func (c *CSR) NNZ() int { return len(c.data) }

// RowNNZ returns the number of stored values in row i.
func (c *CSR) RowNNZ(i int) int {
	return int(c.indptr[i+1] - c.indptr[i])
}

// Equal reports whether c and other have identical shape, data,
// indices and indptr. data comparison is bit-exact; there is no
// float tolerance.
func (c *CSR) Equal(other *CSR) bool {
	if c.nrows != other.nrows || c.ncols != other.ncols {
		return false
	}
	if len(c.data) != len(other.data) || len(c.indices) != len(other.indices) || len(c.indptr) != len(other.indptr) {
		return false
	}
	for i := range c.data {
		if c.data[i] != other.data[i] {
			return false
		}
	}
	for i := range c.indices {
		if c.indices[i] != other.indices[i] {
			return false
		}
	}
	for i := range c.indptr {
		if c.indptr[i] != other.indptr[i] {
			return false
		}
	}
	return true
}
