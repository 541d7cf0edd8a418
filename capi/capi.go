// Command capi builds a c-shared/c-archive library: a thin
// opaque-handle façade over gscounting.CSR suitable for loading from
// other languages through cgo. Handles are integer keys into a
// process-wide table rather than raw Go pointers: Go pointers must
// not be retained by C callers across cgo calls, so every exported
// operation takes or returns a C.uintptr_t handle instead.
//
// Status is 0 on success, -1 on any failure; diagnostics are written
// to the process's standard error. There is no thread-local error
// channel.
package main

/*
#include <stdint.h>

typedef struct {
	uintptr_t csr_handle;
	const int64_t *idxset;
	uint64_t len;
} gsc_slice_args;
*/
import "C"

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/kkonevets/gscounting"
)

var (
	mu      sync.Mutex
	nextID  uintptr = 1
	handles         = make(map[uintptr]*gscounting.CSR)
	slices          = make(map[uintptr]*gscounting.Dense) // last slice buffer per handle
)

func newHandle(m *gscounting.CSR) C.uintptr_t {
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	handles[id] = m
	return C.uintptr_t(id)
}

func lookup(h C.uintptr_t) (*gscounting.CSR, bool) {
	mu.Lock()
	defer mu.Unlock()
	m, ok := handles[uintptr(h)]
	return m, ok
}

func fail(op string, err error) C.int {
	fmt.Fprintf(os.Stderr, "gscounting: %s: %v\n", op, err)
	return -1
}

// LoadCSR loads the CSR file at path, reports the inferred/validated
// shape through nrowsOut/ncolsOut, and returns a handle through out.
//
//export LoadCSR
func LoadCSR(path *C.char, out *C.uintptr_t, nrowsOut, ncolsOut *C.uint64_t) C.int {
	m, err := gscounting.Load(C.GoString(path))
	if err != nil {
		return fail("load_csr", err)
	}
	*out = newHandle(m)
	*nrowsOut = C.uint64_t(m.Nrows())
	*ncolsOut = C.uint64_t(m.Ncols())
	return 0
}

// SaveCSR saves the CSR referenced by handle to path.
//
//export SaveCSR
func SaveCSR(handle C.uintptr_t, path *C.char) C.int {
	m, ok := lookup(handle)
	if !ok {
		return fail("save_csr", fmt.Errorf("unknown handle"))
	}
	if err := m.Save(C.GoString(path)); err != nil {
		return fail("save_csr", err)
	}
	return 0
}

// SliceCSR slices the CSR referenced by args.csr_handle at the signed
// row indices in args.idxset (args.len of them), and reports a
// pointer to the resulting contiguous row-major float buffer along
// with its shape. The buffer's lifetime is bound to the handle: each
// call to SliceCSR on the same handle invalidates any buffer returned
// by a previous call.
//
//export SliceCSR
func SliceCSR(args *C.gsc_slice_args, dataOut **C.float, nrowsOut, ncolsOut *C.uint64_t) C.int {
	m, ok := lookup(args.csr_handle)
	if !ok {
		return fail("slice_csr", fmt.Errorf("unknown handle"))
	}

	n := int(args.len)
	idxPtr := (*[1 << 30]C.int64_t)(unsafe.Pointer(args.idxset))[:n:n]
	ixs := make([]int, n)
	for i, v := range idxPtr {
		ixs[i] = int(v)
	}

	d, err := m.Slice(ixs)
	if err != nil {
		return fail("slice_csr", err)
	}

	mu.Lock()
	slices[uintptr(args.csr_handle)] = d
	mu.Unlock()

	if len(d.Data) == 0 {
		*dataOut = nil
	} else {
		*dataOut = (*C.float)(unsafe.Pointer(&d.Data[0]))
	}
	*nrowsOut = C.uint64_t(d.Nrows)
	*ncolsOut = C.uint64_t(d.Ncols)
	return 0
}

// FreeCSR releases the CSR referenced by handle and any slice buffer
// associated with it. It is safe to call with an already-freed or
// unknown handle (reported, not crashing).
//
//export FreeCSR
func FreeCSR(handle C.uintptr_t) C.int {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := handles[uintptr(handle)]; !ok {
		fmt.Fprintf(os.Stderr, "gscounting: free_csr: unknown or already-freed handle\n")
		return -1
	}
	delete(handles, uintptr(handle))
	delete(slices, uintptr(handle))
	return 0
}

func main() {}
