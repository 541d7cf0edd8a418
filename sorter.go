package gscounting

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/exp/slices"
)

// Sorter orders a stream of fixed-schema binary records too large to
// fit in memory: it buffers up to a memory budget, unstably sorts the
// buffer, spills it to a numbered run file, and repeats until the
// input is exhausted. Merge then produces a single lazily-merged
// sorted stream over the spilled runs.
type Sorter[T any] struct {
	scratchDir string
	maxRecords int
	encode     func(io.Writer, T) bool
	decode     func(io.Reader, *T) bool
	less       func(T, T) bool

	runs int
}

// NewSorter constructs a Sorter writing run files under scratchDir,
// using codec to encode, decode and order T. maxMem is the byte
// budget for the in-memory buffer; it is clamped from below so at
// least one record fits.
func NewSorter[T any](scratchDir string, maxMem int, recordSize int, codec RecordCodec[T]) *Sorter[T] {
	if maxMem < recordSize {
		maxMem = recordSize
	}
	return &Sorter[T]{
		scratchDir: scratchDir,
		maxRecords: maxMem / recordSize,
		encode:     codec.Encode,
		decode:     codec.Decode,
		less:       codec.Less,
	}
}

// Sort reads records one by one from src, spills sorted runs to
// scratchDir, and returns a Merge that lazily produces the fully
// sorted sequence. The caller must Close the returned Merge when
// done; run files are not deleted automatically.
func (s *Sorter[T]) Sort(src io.Reader) (*Merge[T], error) {
	it := NewRecordIterator(src, RecordCodec[T]{Decode: s.decode})

	buf := make([]T, 0, s.maxRecords)
	for {
		rec, ok := it.Next()
		if !ok {
			break
		}
		buf = append(buf, rec)
		if len(buf) == s.maxRecords {
			if err := s.flush(buf); err != nil {
				return nil, err
			}
			buf = buf[:0]
		}
	}
	if len(buf) > 0 {
		if err := s.flush(buf); err != nil {
			return nil, err
		}
	}
	buf = nil // release phase-1 buffer memory explicitly

	return s.openMerge()
}

// flush unstably sorts buf and writes it to the next numbered run
// file.
func (s *Sorter[T]) flush(buf []T) error {
	slices.SortFunc(buf, func(a, b T) int {
		switch {
		case s.less(a, b):
			return -1
		case s.less(b, a):
			return 1
		default:
			return 0
		}
	})

	path := s.runPath(s.runs)
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create run file", Path: path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range buf {
		if !s.encode(w, rec) {
			return &IOError{Op: "write run file", Path: path, Err: io.ErrShortWrite}
		}
	}
	if err := w.Flush(); err != nil {
		return &IOError{Op: "flush run file", Path: path, Err: err}
	}

	s.runs++
	return nil
}

func (s *Sorter[T]) runPath(n int) string {
	return filepath.Join(s.scratchDir, strconv.Itoa(n)+".bin")
}

// openMerge reopens every spilled run file for reading and returns
// the k-way merge over them.
func (s *Sorter[T]) openMerge() (*Merge[T], error) {
	files := make([]*os.File, 0, s.runs)
	for i := 0; i < s.runs; i++ {
		path := s.runPath(i)
		f, err := os.Open(path)
		if err != nil {
			for _, open := range files {
				open.Close()
			}
			return nil, &IOError{Op: "open run file", Path: path, Err: err}
		}
		files = append(files, f)
	}
	return newMerge(files, s.decode, s.less)
}
