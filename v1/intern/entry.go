// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"sync/atomic"
)

// entry is the durable, immutable storage for one unique interned string.
// hash and str never change after the entry is published to a shard. refs
// and cold are used only by ReclaimingTable; a plain Table never touches
// them.
type entry struct {
	hash uint64
	str  string

	// refs counts live references handed out by a ReclaimingTable.
	refs atomic.Int32

	// cold marks an entry that had zero references when the scavenger last
	// swept it. Guarded by the owning shard's mutex.
	cold bool
}

// Handle is a small copyable reference to an interned string. Two Handles
// compare equal with == iff they were produced from equal content by the
// same table; the uniqueness invariant makes content equality follow from
// identity equality. Handles are safe to copy, share and compare across
// goroutines without synchronization.
//
// The zero Handle references nothing. Accessors on the zero Handle panic,
// matching the contract of unique.Handle in the standard library.
type Handle struct {
	e *entry
}

// Value returns the interned content. The returned string is backed by the
// table's storage and remains valid for the lifetime of the entry.
func (h Handle) Value() string {
	return h.e.str
}

// Len returns the length of the interned content in bytes.
func (h Handle) Len() int {
	return len(h.e.str)
}

// Hash returns the content digest precomputed when the entry was created.
// It is the same value hash.Digest returns for the content, so it is stable
// across processes.
func (h Handle) Hash() uint64 {
	return h.e.hash
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.e == nil
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	return h.e.str
}
