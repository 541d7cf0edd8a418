package gscounting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeAdjacencyRun(t *testing.T, path string, records []Adjacency) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create run file: %v", err)
	}
	defer f.Close()
	for _, r := range records {
		if !EncodeAdjacency(f, r) {
			t.Fatalf("EncodeAdjacency failed")
		}
	}
}

func TestMergeAdjacencyAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	run0 := []Adjacency{
		{Source: 0, Targets: []uint32{1, 2}},
		{Source: 3, Targets: []uint32{9}},
	}
	run1 := []Adjacency{
		{Source: 1, Targets: []uint32{5}},
		{Source: 2, Targets: nil},
	}

	p0 := filepath.Join(dir, "0.bin")
	p1 := filepath.Join(dir, "1.bin")
	writeAdjacencyRun(t, p0, run0)
	writeAdjacencyRun(t, p1, run1)

	f0, err := os.Open(p0)
	if err != nil {
		t.Fatalf("open run 0: %v", err)
	}
	f1, err := os.Open(p1)
	if err != nil {
		t.Fatalf("open run 1: %v", err)
	}

	merge, err := newMerge([]*os.File{f0, f1}, DecodeAdjacency, LessAdjacency)
	if err != nil {
		t.Fatalf("newMerge: %v", err)
	}
	defer merge.Close()

	var sources []uint32
	for {
		rec, ok := merge.Next()
		if !ok {
			break
		}
		sources = append(sources, rec.Source)
	}

	want := []uint32{0, 1, 2, 3}
	if len(sources) != len(want) {
		t.Fatalf("want %d records, got %d (%v)", len(want), len(sources), sources)
	}
	for i := range want {
		if sources[i] != want[i] {
			t.Fatalf("position %d: want source %d, got %d", i, want[i], sources[i])
		}
	}
}

func TestMergeCloseClosesAllRuns(t *testing.T) {
	dir := t.TempDir()
	p0 := filepath.Join(dir, "0.bin")
	writeAdjacencyRun(t, p0, []Adjacency{{Source: 1, Targets: []uint32{2}}})

	f0, err := os.Open(p0)
	if err != nil {
		t.Fatalf("open run 0: %v", err)
	}

	merge, err := newMerge([]*os.File{f0}, DecodeAdjacency, LessAdjacency)
	if err != nil {
		t.Fatalf("newMerge: %v", err)
	}
	if err := merge.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var buf bytes.Buffer
	if _, err := f0.Read(buf.Bytes()); err == nil {
		t.Fatalf("expected read on a closed file to fail")
	}
}

func TestLessAdjacencyPrefixOrdering(t *testing.T) {
	a := Adjacency{Source: 1, Targets: []uint32{1, 2}}
	b := Adjacency{Source: 1, Targets: []uint32{1, 2, 3}}
	if !LessAdjacency(a, b) {
		t.Fatalf("expected shorter prefix to sort first")
	}
	if LessAdjacency(b, a) {
		t.Fatalf("expected longer sequence not to sort before its prefix")
	}
}
