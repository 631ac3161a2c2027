// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/open-policy-agent/intern/v1/hash"
)

const (
	defaultShardCount    = 64
	defaultShardCapacity = 16
)

// Table is a sharded intern table. The digest of the content selects a
// shard (top bits, so shard choice and in-shard bucket choice use different
// bits of the digest), and each shard serializes its own check-then-insert
// sequence with a mutex. A Table must not be copied after first use.
//
// The zero value is not usable; create Tables with New.
type Table struct {
	shards []shard
	shift  uint
	alloc  Allocator

	entries atomic.Int64
	bytes   atomic.Int64
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// Opt is a configuration option for New and NewReclaiming.
type Opt func(*config)

type config struct {
	shards    int
	capacity  int
	alloc     Allocator
	chunkSize int
}

// WithShards sets the shard count. The value is rounded up to a power of
// two; values below 1 select the default of 64. More shards reduce lock
// contention under heavily concurrent interning at the cost of a little
// fixed memory.
func WithShards(n int) Opt {
	return func(c *config) {
		c.shards = n
	}
}

// WithInitialCapacity sets the initial bucket capacity of each shard,
// rounded up to a power of two. Sizing this for the expected number of
// distinct strings avoids growth rehashes during warm-up.
func WithInitialCapacity(n int) Opt {
	return func(c *config) {
		c.capacity = n
	}
}

// WithAllocator routes backing storage for interned content through a. For
// ordinary processes the default arena is the right choice; this exists for
// restricted environments that cannot assume an ambient heap.
func WithAllocator(a Allocator) Opt {
	return func(c *config) {
		c.alloc = a
	}
}

// WithArenaChunkSize sets the segment size of the default arena. Ignored
// when WithAllocator is given.
func WithArenaChunkSize(n int) Opt {
	return func(c *config) {
		c.chunkSize = n
	}
}

// New creates an empty Table.
func New(opts ...Opt) *Table {
	c := config{
		shards:    defaultShardCount,
		capacity:  defaultShardCapacity,
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(&c)
	}

	nShards := ceilPow2(c.shards, defaultShardCount)
	capacity := ceilPow2(c.capacity, defaultShardCapacity)

	alloc := c.alloc
	if alloc == nil {
		alloc = NewArena(c.chunkSize)
	}

	t := &Table{
		shards: make([]shard, nShards),
		shift:  uint(64 - bits.TrailingZeros(uint(nShards))),
		alloc:  alloc,
	}
	for i := range t.shards {
		t.shards[i].init(capacity)
	}
	return t
}

func ceilPow2(n, def int) int {
	if n < 1 {
		return def
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << uint(bits.Len(uint(n)))
}

// Intern returns the Handle for s, creating a new entry only if no entry
// with equal content exists. Intern never returns two different Handles for
// equal content. It panics only if the table's Allocator fails; use
// TryIntern to observe allocation failure as an error instead.
func (t *Table) Intern(s string) Handle {
	h, err := t.intern(s, hash.Digest(s))
	if err != nil {
		panic(fmt.Sprintf("intern: %v", err))
	}
	return h
}

// InternBytes interns the content of b. b is not retained: the content is
// copied into the table's storage on a miss. It must not be mutated
// concurrently with the call.
func (t *Table) InternBytes(b []byte) Handle {
	// Zero-copy view for probing; intern copies before storing.
	s := unsafe.String(unsafe.SliceData(b), len(b))
	h, err := t.intern(s, hash.DigestBytes(b))
	if err != nil {
		panic(fmt.Sprintf("intern: %v", err))
	}
	return h
}

// TryIntern is Intern with allocation failure reported as an error wrapping
// ErrAllocFailure. Deployments with an infallible allocator never see an
// error from it.
func (t *Table) TryIntern(s string) (Handle, error) {
	return t.intern(s, hash.Digest(s))
}

func (t *Table) intern(s string, d uint64) (Handle, error) {
	sh := &t.shards[d>>t.shift]

	sh.mu.Lock()
	if e := sh.find(d, s); e != nil {
		sh.mu.Unlock()
		t.hits.Add(1)
		return Handle{e}, nil
	}

	e, err := t.newEntry(s, d)
	if err != nil {
		sh.mu.Unlock()
		return Handle{}, err
	}
	sh.insert(d, e)
	sh.mu.Unlock()

	t.misses.Add(1)
	t.entries.Add(1)
	t.bytes.Add(int64(len(s)))
	return Handle{e}, nil
}

// newEntry copies s into durable storage and wraps it in an entry. Called
// with the destination shard's lock held, so a racing intern of the same
// content cannot create a second entry.
func (t *Table) newEntry(s string, d uint64) (*entry, error) {
	e := &entry{hash: d}
	if len(s) == 0 {
		return e, nil
	}

	b, err := t.alloc.Alloc(len(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocFailure, err)
	}
	if len(b) < len(s) {
		return nil, fmt.Errorf("%w: allocator returned %d bytes, need %d", ErrAllocFailure, len(b), len(s))
	}
	copy(b, s)

	// The arena never reuses or moves these bytes, so the string view is
	// immutable from here on.
	e.str = unsafe.String(unsafe.SliceData(b), len(s))
	return e, nil
}

// Lookup returns the Handle for s if s has already been interned. It never
// creates an entry.
func (t *Table) Lookup(s string) (Handle, bool) {
	d := hash.Digest(s)
	sh := &t.shards[d>>t.shift]

	sh.mu.Lock()
	e := sh.find(d, s)
	sh.mu.Unlock()

	if e == nil {
		t.misses.Add(1)
		return Handle{}, false
	}
	t.hits.Add(1)
	return Handle{e}, true
}

// Len returns the number of distinct entries currently held. Diagnostic
// only: by the time the caller looks at the value, concurrent interning may
// have changed it.
func (t *Table) Len() int {
	return int(t.entries.Load())
}

// Stats is a point-in-time snapshot of table counters.
type Stats struct {
	// Entries is the number of distinct interned strings.
	Entries int64
	// Bytes is the total content length across entries.
	Bytes int64
	// Hits counts probes that found an existing entry (Intern and Lookup).
	Hits uint64
	// Misses counts probes that found none: Intern misses (each creates an
	// entry) and failed Lookups.
	Misses uint64
}

// Stats returns a snapshot of the table's counters.
func (t *Table) Stats() Stats {
	return Stats{
		Entries: t.entries.Load(),
		Bytes:   t.bytes.Load(),
		Hits:    t.hits.Load(),
		Misses:  t.misses.Load(),
	}
}
