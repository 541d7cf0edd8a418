package gscounting

import (
	"encoding/binary"
	"io"

	"golang.org/x/exp/constraints"
)

// Edge is a directed graph edge (source, target) of 32-bit node ids.
// Wire layout: u32 source || u32 target, little-endian regardless of
// host byte order.
type Edge struct {
	Source uint32
	Target uint32
}

// EncodeEdge writes e's wire layout to w and reports whether the
// write fully succeeded.
func EncodeEdge(w io.Writer, e Edge) bool {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], e.Source)
	binary.LittleEndian.PutUint32(buf[4:8], e.Target)
	n, err := w.Write(buf[:])
	return err == nil && n == len(buf)
}

// DecodeEdge attempts to read one Edge from r into out. It reports
// false on a short read at end of stream; out is unspecified then.
func DecodeEdge(r io.Reader, out *Edge) bool {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false
	}
	out.Source = binary.LittleEndian.Uint32(buf[0:4])
	out.Target = binary.LittleEndian.Uint32(buf[4:8])
	return true
}

// LessEdge is the natural lexicographic ordering (source, target).
func LessEdge(a, b Edge) bool {
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.Target < b.Target
}

// Adjacency is a source node and its ordered list of target nodes.
// Wire layout: u32 length || u32 source || length * u32 targets.
// Note the length precedes the source; this wire order must be
// preserved exactly.
type Adjacency struct {
	Source  uint32
	Targets []uint32
}

// EncodeAdjacency writes a's wire layout to w and reports whether the
// write fully succeeded.
func EncodeAdjacency(w io.Writer, a Adjacency) bool {
	var head [8]byte
	binary.LittleEndian.PutUint32(head[0:4], uint32(len(a.Targets)))
	binary.LittleEndian.PutUint32(head[4:8], a.Source)
	if n, err := w.Write(head[:]); err != nil || n != len(head) {
		return false
	}
	return writeVector(w, a.Targets)
}

// DecodeAdjacency attempts to read one Adjacency from r into out. It
// reports false on a short read at end of stream; out is unspecified
// then.
func DecodeAdjacency(r io.Reader, out *Adjacency) bool {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return false
	}
	length := binary.LittleEndian.Uint32(head[0:4])
	out.Source = binary.LittleEndian.Uint32(head[4:8])
	targets, ok := readVectorN[uint32](r, length)
	if !ok {
		return false
	}
	out.Targets = targets
	return true
}

// LessAdjacency orders by source, then by the targets sequence
// element-wise, then by length (a prefix sorts before its extension).
func LessAdjacency(a, b Adjacency) bool {
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	n := len(a.Targets)
	if len(b.Targets) < n {
		n = len(b.Targets)
	}
	for i := 0; i < n; i++ {
		if a.Targets[i] != b.Targets[i] {
			return a.Targets[i] < b.Targets[i]
		}
	}
	return len(a.Targets) < len(b.Targets)
}

// RecordCodec bundles the function values C2 and C4 need to treat a
// record type as an opaque wire record: how to encode one, how to
// decode one, and how to order two for external sorting. Encode is
// nil for codecs used only by a RecordIterator, which never writes.
type RecordCodec[T any] struct {
	Encode func(io.Writer, T) bool
	Decode func(io.Reader, *T) bool
	Less   func(T, T) bool
}

// vectorElem constrains the element types used by the length-prefixed
// typed vector helpers shared by the CSR file body and by Adjacency's
// target list: unsigned 32-bit indices and 32-bit floats.
type vectorElem interface {
	constraints.Integer | constraints.Float
}

// writeVector writes a length-prefixed typed vector: u32 length
// followed by len(v) elements, little-endian regardless of host byte
// order, no padding.
func writeVector[T vectorElem](w io.Writer, v []T) bool {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
	if n, err := w.Write(lenBuf[:]); err != nil || n != len(lenBuf) {
		return false
	}
	if len(v) == 0 {
		return true
	}
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:4*i+4], toBits(x))
	}
	n, err := w.Write(buf)
	return err == nil && n == len(buf)
}

// readVector reads a length-prefixed typed vector written by
// writeVector, reporting false on any short read.
func readVector[T vectorElem](r io.Reader) ([]T, bool) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, false
	}
	length := binary.LittleEndian.Uint32(lenBuf[:])
	return readVectorN[T](r, length)
}

// readVectorN reads exactly length elements of a typed vector body
// (no length prefix), as used when the caller already consumed the
// prefix itself (Adjacency's targets, whose length shares a word with
// the record header).
func readVectorN[T vectorElem](r io.Reader, length uint32) ([]T, bool) {
	if length == 0 {
		return []T{}, true
	}
	buf := make([]byte, 4*int(length))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, false
	}
	out := make([]T, length)
	for i := range out {
		out[i] = fromBits[T](binary.LittleEndian.Uint32(buf[4*i : 4*i+4]))
	}
	return out, true
}
