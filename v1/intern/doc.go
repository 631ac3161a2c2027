// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package intern deduplicates strings. Interning a string returns a small,
// copyable Handle such that equal content always yields the same Handle and
// distinct content always yields distinct Handles. Handle equality and
// hashing are identity operations on the backing entry, never content
// comparisons, which makes interned strings cheap to use as map keys and to
// compare on hot paths (symbol tables, tag names, repeated object keys).
//
// The table is sharded: a 64-bit content digest selects one of a fixed set
// of shards, and each shard guards its bucket storage with its own mutex.
// Entries are immutable once published, so resolving a Handle back to its
// content, comparing Handles and hashing Handles all require no locking.
//
// The package-level Intern, InternBytes and Lookup functions operate on a
// lazily-created process-wide Table. Callers that prefer explicit state can
// create their own Table (or several) with New.
//
// Under the default policy interned content is never reclaimed: entries live
// until the process exits. This is deliberate; the dominant use case interns
// a bounded universe of short strings. ReclaimingTable is the opt-in
// alternative for unbounded key spaces: it attaches reference counts to
// entries and a scavenger removes entries that have gone unreferenced.
//
// Memory for interned content is obtained through an injectable Allocator.
// The default is a segmented bump arena, so a table with n entries performs
// O(n / entries-per-chunk) backing allocations rather than one per entry.
package intern
