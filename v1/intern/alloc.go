// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"errors"
	"sync"
)

// ErrAllocFailure is returned (wrapped) by TryIntern when the table's
// Allocator cannot provide backing storage.
var ErrAllocFailure = errors.New("intern: allocation failure")

// Allocator provides durable backing storage for interned content. The
// table calls Alloc once per new entry and never releases the returned
// memory; the bytes become the permanent backing of an interned string and
// must not be reused or moved by the implementation.
//
// Implementations must be safe for concurrent use: two shards may allocate
// at the same time.
//
// The default Allocator is an Arena. Restricted environments that cannot
// rely on the ambient heap inject their own implementation via
// WithAllocator; such an implementation may signal exhaustion by returning
// an error, which Intern turns into a panic and TryIntern into an error.
type Allocator interface {
	Alloc(n int) ([]byte, error)
}

// defaultChunkSize is the size of each arena segment. Interned strings are
// typically short, so one segment holds hundreds of entries.
const defaultChunkSize = 64 * 1024

// Arena is a segmented bump allocator. It hands out slices of large
// pre-allocated chunks and never frees them, which is exactly the lifetime
// interned content has under the default policy. When the current chunk
// cannot satisfy a request a new chunk is allocated and the remainder of
// the old one is abandoned.
type Arena struct {
	mu        sync.Mutex
	chunk     []byte
	off       int
	chunkSize int

	// allocated tracks total bytes handed out, for diagnostics.
	allocated int
}

// NewArena creates an arena with the given segment size. Sizes below 1KB
// are rounded up to 1KB. The first segment is allocated lazily on first
// use, so an arena for a table that never interns costs nothing.
func NewArena(chunkSize int) *Arena {
	if chunkSize < 1024 {
		chunkSize = 1024
	}
	return &Arena{chunkSize: chunkSize}
}

// Alloc implements Allocator.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.allocated += n

	// Oversized requests bypass the bump chunk entirely.
	if n >= a.chunkSize/4 {
		return make([]byte, n), nil
	}

	if len(a.chunk)-a.off < n {
		a.chunk = make([]byte, a.chunkSize)
		a.off = 0
	}

	// Full slice expression caps capacity so an append by a buggy caller
	// cannot bleed into the next entry's storage.
	b := a.chunk[a.off : a.off+n : a.off+n]
	a.off += n
	return b, nil
}

// Allocated returns the total number of bytes handed out so far.
func (a *Arena) Allocated() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated
}
