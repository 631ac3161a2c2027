// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package hash

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
)

var benchSizes = []int{4, 16, 64, 256, 4096}

func benchInput(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + i%26)
	}
	return string(b)
}

func BenchmarkDigest(b *testing.B) {
	for _, n := range benchSizes {
		s := benchInput(n)
		b.Run(fmt.Sprintf("size=%d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			for i := 0; i < b.N; i++ {
				sinkUint64 = Digest(s)
			}
		})
	}
}

// BenchmarkDigestVsXXHash compares the FNV-1a digest against xxhash. xxhash
// wins on large inputs, but intern keys are short (tags, symbols, map keys)
// and FNV-1a's zero-setup loop is competitive there while staying trivially
// reproducible by the code generator.
func BenchmarkDigestVsXXHash(b *testing.B) {
	for _, n := range benchSizes {
		s := benchInput(n)
		b.Run(fmt.Sprintf("fnv1a/size=%d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			for i := 0; i < b.N; i++ {
				sinkUint64 = Digest(s)
			}
		})
		b.Run(fmt.Sprintf("xxhash/size=%d", n), func(b *testing.B) {
			b.SetBytes(int64(n))
			for i := 0; i < b.N; i++ {
				sinkUint64 = xxhash.Sum64String(s)
			}
		})
	}
}

var sinkUint64 uint64
