// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"fmt"
	"math/bits"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/open-policy-agent/intern/v1/hash"
)

// ReclaimingTable is the opt-in alternative to Table for unbounded key
// spaces: entries carry reference counts and a scavenger removes entries
// nobody references anymore.
//
// Reference discipline:
//   - Intern and Lookup return handles that are already retained; every
//     such handle must eventually be passed to Release exactly once.
//   - Retain takes an additional reference and is only valid on a handle
//     the caller still holds retained. This keeps the zero-to-positive
//     transition of a count confined to Intern/Lookup, which perform it
//     under the shard lock the scavenger also takes, so the scavenger can
//     never free an entry out from under a racing probe.
//   - A handle is valid (and its content stable) for as long as its
//     reference count is positive.
//
// Removal is generational: a sweep first marks zero-reference entries cold
// and removes them only if they are still cold and unreferenced on the next
// sweep. An entry that bounces between zero and one reference is therefore
// never reclaimed while it is in active rotation.
//
// Content is individually heap allocated rather than arena backed: the
// whole point of this variant is that the garbage collector can take the
// memory back once the entry is removed.
type ReclaimingTable struct {
	shards []shard
	shift  uint

	entries atomic.Int64
	bytes   atomic.Int64
	hits    atomic.Uint64
	misses  atomic.Uint64

	scavengerStop chan struct{}
	stopOnce      sync.Once
}

// NewReclaiming creates an empty ReclaimingTable. It honors WithShards and
// WithInitialCapacity; allocator options are ignored because entries must
// be individually reclaimable.
func NewReclaiming(opts ...Opt) *ReclaimingTable {
	c := config{
		shards:   defaultShardCount,
		capacity: defaultShardCapacity,
	}
	for _, opt := range opts {
		opt(&c)
	}

	nShards := ceilPow2(c.shards, defaultShardCount)
	capacity := ceilPow2(c.capacity, defaultShardCapacity)

	t := &ReclaimingTable{
		shards:        make([]shard, nShards),
		shift:         uint(64 - bits.TrailingZeros(uint(nShards))),
		scavengerStop: make(chan struct{}),
	}
	for i := range t.shards {
		t.shards[i].init(capacity)
	}
	return t
}

// Intern returns a retained Handle for s, creating an entry if needed. Pair
// with Release.
func (t *ReclaimingTable) Intern(s string) Handle {
	d := hash.Digest(s)
	sh := &t.shards[d>>t.shift]

	sh.mu.Lock()
	if e := sh.find(d, s); e != nil {
		e.refs.Add(1)
		e.cold = false
		sh.mu.Unlock()
		t.hits.Add(1)
		return Handle{e}
	}

	e := &entry{hash: d, str: strings.Clone(s)}
	e.refs.Store(1)
	sh.insert(d, e)
	sh.mu.Unlock()

	t.misses.Add(1)
	t.entries.Add(1)
	t.bytes.Add(int64(len(s)))
	return Handle{e}
}

// Lookup returns a retained Handle for s if present. Pair a successful
// Lookup with Release.
func (t *ReclaimingTable) Lookup(s string) (Handle, bool) {
	d := hash.Digest(s)
	sh := &t.shards[d>>t.shift]

	sh.mu.Lock()
	e := sh.find(d, s)
	if e != nil {
		e.refs.Add(1)
		e.cold = false
	}
	sh.mu.Unlock()

	if e == nil {
		t.misses.Add(1)
		return Handle{}, false
	}
	t.hits.Add(1)
	return Handle{e}, true
}

// Retain takes an additional reference on h. Valid only while the caller
// already holds h retained.
func (t *ReclaimingTable) Retain(h Handle) {
	if n := h.e.refs.Add(1); n < 2 {
		panic(fmt.Sprintf("intern: Retain on unretained handle (refs=%d)", n))
	}
}

// Release drops one reference on h. Once the count reaches zero the entry
// becomes eligible for reclamation on a later sweep; the handle must not be
// used afterwards.
func (t *ReclaimingTable) Release(h Handle) {
	if n := h.e.refs.Add(-1); n < 0 {
		panic(fmt.Sprintf("intern: Release without matching retain (refs=%d)", n))
	}
}

// Scavenge performs one sweep: zero-reference entries seen cold on the
// previous sweep are removed, the rest of the zero-reference entries are
// marked cold. Safe to call concurrently with interning.
func (t *ReclaimingTable) Scavenge() {
	for i := range t.shards {
		sh := &t.shards[i]

		sh.mu.Lock()
		for _, e := range sh.entries {
			if e == nil || e == tombstone {
				continue
			}
			if e.refs.Load() != 0 {
				e.cold = false
				continue
			}
			if !e.cold {
				e.cold = true
				continue
			}
			sh.remove(e)
			t.entries.Add(-1)
			t.bytes.Add(-int64(len(e.str)))
		}
		sh.mu.Unlock()
	}
}

// StartScavenger starts a background goroutine sweeping at the given
// interval. Stop it with StopScavenger.
func (t *ReclaimingTable) StartScavenger(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.Scavenge()
			case <-t.scavengerStop:
				return
			}
		}
	}()
}

// StopScavenger stops the background scavenger. Idempotent.
func (t *ReclaimingTable) StopScavenger() {
	t.stopOnce.Do(func() {
		close(t.scavengerStop)
	})
}

// Len returns the number of resident entries.
func (t *ReclaimingTable) Len() int {
	return int(t.entries.Load())
}

// Stats returns a snapshot of the table's counters.
func (t *ReclaimingTable) Stats() Stats {
	return Stats{
		Entries: t.entries.Load(),
		Bytes:   t.bytes.Load(),
		Hits:    t.hits.Load(),
		Misses:  t.misses.Load(),
	}
}
