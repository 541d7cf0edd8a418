package gscounting

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Slice materializes a dense submatrix from the selected rows of c.
// ixs holds signed row indices; a negative index k is normalized to
// k+nrows before bounds-checking. Output row i mirrors ixs[i] exactly;
// normalization is observable in the row produced, not in its
// position.
//
// The scatter runs over a blocked parallel-for across output rows:
// each worker only ever writes into its own disjoint row range of the
// output buffer, so no synchronization between workers is needed.
// Bounds violations are detected inside worker bodies; each worker
// stops at its first bad row, and the error returned is the one for
// the lowest output position, independent of worker scheduling.
func (c *CSR) Slice(ixs []int) (*Dense, error) {
	out := zeroDense(len(ixs), c.ncols)
	if len(ixs) == 0 {
		return out, nil
	}

	workers := runtime.NumCPU()
	if workers > len(ixs) {
		workers = len(ixs)
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (len(ixs) + workers - 1) / workers

	// errs holds each chunk's first error, indexed by chunk position.
	errs := make([]error, (len(ixs)+chunk-1)/chunk)
	var g errgroup.Group
	for start := 0; start < len(ixs); start += chunk {
		end := start + chunk
		if end > len(ixs) {
			end = len(ixs)
		}
		start, end, slot := start, end, start/chunk
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := c.scatterRow(out, i, ixs[i]); err != nil {
					errs[slot] = err
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
	}
	return out, nil
}

// scatterRow writes output row i from CSR row k (after negative-index
// normalization), scattering each stored value into out's row-major
// buffer. Cells not touched remain zero.
func (c *CSR) scatterRow(out *Dense, i, k int) error {
	if k < 0 {
		k += c.nrows
	}
	if k < 0 || k >= c.nrows {
		return &IndexOutOfRangeError{Index: k, Bound: c.nrows}
	}

	base := i * c.ncols
	for j := c.indptr[k]; j < c.indptr[k+1]; j++ {
		out.Data[base+int(c.indices[j])] = c.data[j]
	}
	return nil
}
