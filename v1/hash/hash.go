// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package hash implements the digest function used by the intern table.
//
// The digest is FNV-1a over the raw bytes of the input, 64 bits wide,
// unseeded. The algorithm and its constants are part of the library's
// contract: digests are embedded in generated source files (see
// cmd/interngen) and must be reproducible across processes, architectures
// and releases. Changing either constant changes which strings collide and
// invalidates every previously emitted digest.
//
// FNV-1a is not a cryptographic hash. It is chosen because the whole
// function is a branch-free, allocation-free loop with good avalanche
// behavior on short keys, which keeps shard and bucket load close to
// uniform.
//
// References:
//   - http://www.isthe.com/chongo/tech/comp/fnv/
//   - https://en.wikipedia.org/wiki/Fowler%E2%80%93Noll%E2%80%93Vo_hash_function
package hash

const (
	// Offset64 is the FNV-1a 64-bit offset basis.
	Offset64 uint64 = 14695981039346656037

	// Prime64 is the FNV-1a 64-bit prime.
	Prime64 uint64 = 1099511628211
)

// Digest returns the FNV-1a 64-bit digest of s.
//
// Digest is a pure function: no seed, no process state, no allocation. The
// same input yields the same output on every call, in every process.
func Digest(s string) uint64 {
	h := Offset64
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= Prime64
	}
	return h
}

// DigestBytes returns the FNV-1a 64-bit digest of b. It is equivalent to
// Digest(string(b)) without the conversion.
func DigestBytes(b []byte) uint64 {
	h := Offset64
	for i := 0; i < len(b); i++ {
		h ^= uint64(b[i])
		h *= Prime64
	}
	return h
}

// Add folds one byte into an existing digest and returns the updated value.
// Callers that stream input start from Offset64.
func Add(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= Prime64
	return h
}
