// Command gsctool is a thin CLI driver over the gscounting library:
// it parses flags and dispatches to the library packages. It carries
// no business logic of its own (spec scopes CLI entry points out as
// an external collaborator; the library is the deliverable).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kkonevets/gscounting"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	switch os.Args[1] {
	case "slice":
		runSlice(logger, os.Args[2:])
	case "sort":
		runSort(logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gsctool <slice|sort> [flags]")
}

func runSlice(logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("slice", flag.ExitOnError)
	csrPath := fs.String("csr", "", "path to a CSR binary file")
	rows := fs.String("rows", "", "comma-separated signed row indices to slice")
	out := fs.String("out", "", "path to write the resulting dense rows as text")
	fs.Parse(args)

	if *csrPath == "" || *rows == "" {
		logger.Error("slice requires -csr and -rows")
		os.Exit(2)
	}

	m, err := gscounting.Load(*csrPath)
	if err != nil {
		logger.Error("load csr", "err", err)
		os.Exit(1)
	}

	ixs, err := parseInts(*rows)
	if err != nil {
		logger.Error("parse -rows", "err", err)
		os.Exit(2)
	}

	d, err := m.Slice(ixs)
	if err != nil {
		logger.Error("slice", "err", err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Print(d.String())
		return
	}
	if err := os.WriteFile(*out, []byte(d.String()), 0o644); err != nil {
		logger.Error("write output", "err", err)
		os.Exit(1)
	}
}

func runSort(logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	in := fs.String("in", "", "path to a stream of edge records")
	scratch := fs.String("scratch", "", "scratch directory for run files")
	maxMem := fs.Int("max-mem", 1<<20, "in-memory buffer budget in bytes")
	out := fs.String("out", "", "path to write the sorted output stream")
	fs.Parse(args)

	if *in == "" || *scratch == "" || *out == "" {
		logger.Error("sort requires -in, -scratch and -out")
		os.Exit(2)
	}

	src, err := os.Open(*in)
	if err != nil {
		logger.Error("open input", "err", err)
		os.Exit(1)
	}
	defer src.Close()

	sorter := gscounting.NewSorter(*scratch, *maxMem, 8, gscounting.RecordCodec[gscounting.Edge]{
		Encode: gscounting.EncodeEdge,
		Decode: gscounting.DecodeEdge,
		Less:   gscounting.LessEdge,
	})

	merge, err := sorter.Sort(src)
	if err != nil {
		logger.Error("sort", "err", err)
		os.Exit(1)
	}
	defer merge.Close()

	dst, err := os.Create(*out)
	if err != nil {
		logger.Error("create output", "err", err)
		os.Exit(1)
	}
	defer dst.Close()

	for {
		e, ok := merge.Next()
		if !ok {
			break
		}
		if !gscounting.EncodeEdge(dst, e) {
			logger.Error("write output", "err", "short write")
			os.Exit(1)
		}
	}
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
