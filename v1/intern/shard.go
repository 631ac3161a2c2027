// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"sync"
)

// tombstone marks a bucket whose entry was removed by the scavenger. Probe
// sequences must step over it; inserts may reuse its slot.
var tombstone = &entry{}

// shard is one independently locked partition of a table. Buckets are open
// addressed with linear probing over two parallel slices: hashes caches
// each entry's digest so most probe steps never touch the entry itself.
//
// All fields are guarded by mu.
type shard struct {
	mu      sync.Mutex
	hashes  []uint64
	entries []*entry

	// live is the number of resident entries; used additionally counts
	// tombstones. Growth decisions are based on used, Len on live.
	live int
	used int
}

func (s *shard) init(capacity int) {
	s.hashes = make([]uint64, capacity)
	s.entries = make([]*entry, capacity)
}

// find returns the resident entry with the given digest and content, or nil.
// Digest equality alone is never trusted: two distinct strings may collide,
// so the content comparison always guards the match.
func (s *shard) find(hash uint64, content string) *entry {
	mask := uint64(len(s.entries) - 1)
	i := hash & mask

	for s.entries[i] != nil {
		if e := s.entries[i]; e != tombstone && s.hashes[i] == hash && e.str == content {
			return e
		}
		i = (i + 1) & mask
	}
	return nil
}

// insert places e into the shard. The caller must have established that no
// resident entry with equal content exists. Grows the bucket storage first
// if the occupancy would exceed 3/4; growth rehashes buckets only, so
// previously issued handles (which reference entries, not buckets) stay
// valid.
func (s *shard) insert(hash uint64, e *entry) {
	if (s.used+1)*4 > len(s.entries)*3 {
		s.grow()
	}

	mask := uint64(len(s.entries) - 1)
	i := hash & mask

	for s.entries[i] != nil && s.entries[i] != tombstone {
		i = (i + 1) & mask
	}

	if s.entries[i] == nil {
		s.used++
	}
	s.hashes[i] = hash
	s.entries[i] = e
	s.live++
}

// remove tombstones the bucket holding e. Only the scavenger calls this.
func (s *shard) remove(e *entry) {
	mask := uint64(len(s.entries) - 1)
	i := e.hash & mask

	for s.entries[i] != nil {
		if s.entries[i] == e {
			s.entries[i] = tombstone
			s.hashes[i] = 0
			s.live--
			return
		}
		i = (i + 1) & mask
	}
}

// grow doubles the bucket storage and rehashes resident entries, dropping
// tombstones.
func (s *shard) grow() {
	oldHashes, oldEntries := s.hashes, s.entries

	s.init(len(oldEntries) * 2)
	s.used = s.live

	mask := uint64(len(s.entries) - 1)
	for j, e := range oldEntries {
		if e == nil || e == tombstone {
			continue
		}
		i := oldHashes[j] & mask
		for s.entries[i] != nil {
			i = (i + 1) & mask
		}
		s.hashes[i] = oldHashes[j]
		s.entries[i] = e
	}
}
