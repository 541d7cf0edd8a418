package gscounting

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"sort"
	"testing"
)

var edgeCodec = RecordCodec[Edge]{Encode: EncodeEdge, Decode: DecodeEdge, Less: LessEdge}

func newEdgeSorter(t *testing.T, maxMem int) *Sorter[Edge] {
	t.Helper()
	return NewSorter(t.TempDir(), maxMem, 8, edgeCodec)
}

func encodeEdges(edges []Edge) []byte {
	var buf bytes.Buffer
	for _, e := range edges {
		EncodeEdge(&buf, e)
	}
	return buf.Bytes()
}

// S4. Sort small input with small budget.
func TestExternalSortEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	edges := make([]Edge, 1000)
	for i := range edges {
		edges[i] = Edge{Source: rng.Uint32() % 100, Target: rng.Uint32() % 100}
	}

	sorter := newEdgeSorter(t, 1600) // (1000*8)/5 => ~200 edges/run, 5 runs
	src := bytes.NewReader(encodeEdges(edges))

	merge, err := sorter.Sort(src)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	defer merge.Close()

	var got []Edge
	for {
		e, ok := merge.Next()
		if !ok {
			break
		}
		got = append(got, e)
	}

	want := append([]Edge(nil), edges...)
	sort.Slice(want, func(i, j int) bool { return LessEdge(want[i], want[j]) })

	if len(got) != len(want) {
		t.Fatalf("want %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mismatch at %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestExternalSortOrdering(t *testing.T) {
	edges := []Edge{{3, 1}, {1, 9}, {1, 2}, {2, 0}, {1, 2}}
	sorter := newEdgeSorter(t, 16) // forces multiple tiny runs (2 records/run)
	src := bytes.NewReader(encodeEdges(edges))

	merge, err := sorter.Sort(src)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	defer merge.Close()

	var prev *Edge
	count := 0
	for {
		e, ok := merge.Next()
		if !ok {
			break
		}
		if prev != nil && LessEdge(e, *prev) {
			t.Fatalf("output not non-decreasing: %+v before %+v", *prev, e)
		}
		prev = &e
		count++
	}
	if count != len(edges) {
		t.Fatalf("want %d records, got %d", len(edges), count)
	}
}

func TestExternalSortMemoryBoundClampsToOneRecord(t *testing.T) {
	sorter := newEdgeSorter(t, 1) // smaller than sizeof(Edge)
	if sorter.maxRecords != 1 {
		t.Fatalf("want maxRecords clamped to 1, got %d", sorter.maxRecords)
	}
}

func TestExternalSortEmptyInput(t *testing.T) {
	sorter := newEdgeSorter(t, 64)
	merge, err := sorter.Sort(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	defer merge.Close()

	if _, ok := merge.Next(); ok {
		t.Fatalf("expected no records from an empty input")
	}
}

func TestExternalSortRunFileNaming(t *testing.T) {
	dir := t.TempDir()
	sorter := NewSorter(dir, 16, 8, edgeCodec)

	edges := []Edge{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}}
	merge, err := sorter.Sort(bytes.NewReader(encodeEdges(edges)))
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	defer merge.Close()

	if sorter.runs == 0 {
		t.Fatalf("expected at least one spilled run")
	}
	if got := sorter.runPath(0); filepath.Base(got) != "0.bin" {
		t.Fatalf("want run 0 named 0.bin, got %q", got)
	}
}
