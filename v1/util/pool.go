// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"sync"
)

// bufferPool provides reusable byte buffers for rendering generated files.
// The generator renders one buffer per output file; pooling keeps repeated
// invocations (tests, multi-target builds) from re-allocating.
var bufferPool = sync.Pool{
	New: func() any {
		// Pre-allocate 4KB; a typical generated file fits.
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// GetBuffer retrieves a buffer from the pool.
func GetBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// PutBuffer returns a buffer to the pool after resetting it.
func PutBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
