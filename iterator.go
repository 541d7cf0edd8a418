package gscounting

import "io"

// RecordIterator is a lazy, single-pass pull-model sequence over a
// byte source. Next invokes decode; the sequence terminates the
// first time decode reports a short read. It is restartable only by
// constructing a fresh iterator over a fresh source. There is no
// explicit cancellation: letting the iterator (and its underlying
// reader) go out of scope releases it.
type RecordIterator[T any] struct {
	r      io.Reader
	decode func(io.Reader, *T) bool
	done   bool
}

// NewRecordIterator wraps r as a pull-model sequence of T, decoded by
// codec.Decode (e.g. a RecordCodec[Edge] or RecordCodec[Adjacency]).
func NewRecordIterator[T any](r io.Reader, codec RecordCodec[T]) *RecordIterator[T] {
	return &RecordIterator[T]{r: r, decode: codec.Decode}
}

// Next attempts to decode one more record. It returns the record and
// true on success, or the zero value and false once the source is
// exhausted. Next must not be called again after it returns false.
func (it *RecordIterator[T]) Next() (T, bool) {
	var out T
	if it.done {
		return out, false
	}
	if !it.decode(it.r, &out) {
		it.done = true
		return out, false
	}
	return out, true
}
