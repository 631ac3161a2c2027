// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

// Set is a set of Handles. Handle is comparable and carries a precomputed
// digest, so the built-in map underneath hashes and compares members in
// O(1) regardless of content length. Not safe for concurrent mutation.
type Set map[Handle]struct{}

// NewSet returns a Set containing the given handles.
func NewSet(hs ...Handle) Set {
	s := make(Set, len(hs))
	for _, h := range hs {
		s[h] = struct{}{}
	}
	return s
}

// Add inserts h and reports whether it was not already present.
func (s Set) Add(h Handle) bool {
	if _, ok := s[h]; ok {
		return false
	}
	s[h] = struct{}{}
	return true
}

// Contains reports whether h is in the set.
func (s Set) Contains(h Handle) bool {
	_, ok := s[h]
	return ok
}

// Delete removes h if present.
func (s Set) Delete(h Handle) {
	delete(s, h)
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}
