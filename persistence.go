package gscounting

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Save writes c to path in the CSR binary file format: header
// (u32 nrows || u32 ncols) followed by three length-prefixed typed
// vectors, in order data (f32), indices (u32), indptr (u32).
func (c *CSR) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	var head [8]byte
	binary.LittleEndian.PutUint32(head[0:4], uint32(c.nrows))
	binary.LittleEndian.PutUint32(head[4:8], uint32(c.ncols))
	if n, err := w.Write(head[:]); err != nil || n != len(head) {
		return &IOError{Op: "write header", Path: path, Err: shortWriteErr(err)}
	}

	if !writeVector(w, c.data) {
		return &IOError{Op: "write data vector", Path: path, Err: io.ErrShortWrite}
	}
	if !writeVector(w, c.indices) {
		return &IOError{Op: "write indices vector", Path: path, Err: io.ErrShortWrite}
	}
	if !writeVector(w, c.indptr) {
		return &IOError{Op: "write indptr vector", Path: path, Err: io.ErrShortWrite}
	}

	if err := w.Flush(); err != nil {
		return &IOError{Op: "flush", Path: path, Err: err}
	}
	return nil
}

// Load reads the CSR binary file format from path and constructs a
// CSR via the validated constructor, passing the header's explicit
// shape through so inference never overrides it.
func Load(path string) (*CSR, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer ra.Close()

	cur := &mmapCursor{r: ra}

	var head [8]byte
	if _, err := cur.Read(head[:]); err != nil {
		return nil, &IOError{Op: "read header", Path: path, Err: err}
	}
	nrows := int(binary.LittleEndian.Uint32(head[0:4]))
	ncols := int(binary.LittleEndian.Uint32(head[4:8]))

	data, ok := readVector[float32](cur)
	if !ok {
		return nil, &IOError{Op: "read data vector", Path: path, Err: io.ErrUnexpectedEOF}
	}
	indices, ok := readVector[uint32](cur)
	if !ok {
		return nil, &IOError{Op: "read indices vector", Path: path, Err: io.ErrUnexpectedEOF}
	}
	indptr, ok := readVector[uint32](cur)
	if !ok {
		return nil, &IOError{Op: "read indptr vector", Path: path, Err: io.ErrUnexpectedEOF}
	}

	m, err := New(data, indices, indptr, nrows, ncols)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// mmapCursor adapts a golang.org/x/exp/mmap.ReaderAt into a
// sequential io.Reader so the same length-prefixed-vector decoder
// used by the write side also serves the memory-mapped read side.
type mmapCursor struct {
	r   *mmap.ReaderAt
	off int64
}

func (c *mmapCursor) Read(p []byte) (int, error) {
	n, err := c.r.ReadAt(p, c.off)
	c.off += int64(n)
	if err == io.EOF && n == len(p) {
		err = nil
	}
	return n, err
}

func shortWriteErr(err error) error {
	if err != nil {
		return err
	}
	return io.ErrShortWrite
}
