// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intern

import (
	"sync"
)

// The process-wide table behind the package-level functions. sync.OnceValue
// gives exactly-once construction however many goroutines race to the first
// intern. There is deliberately no teardown: under the default policy the
// table lives for the remainder of the process.
var defaultTable = sync.OnceValue(func() *Table {
	return New()
})

// Default returns the process-wide Table used by the package-level
// functions, creating it on first call. Useful for wiring diagnostics (see
// the metrics package) to the shared table.
func Default() *Table {
	return defaultTable()
}

// Intern interns s in the process-wide table.
func Intern(s string) Handle {
	return defaultTable().Intern(s)
}

// InternBytes interns the content of b in the process-wide table.
func InternBytes(b []byte) Handle {
	return defaultTable().InternBytes(b)
}

// Lookup returns the Handle for s from the process-wide table if s has
// already been interned there.
func Lookup(s string) (Handle, bool) {
	return defaultTable().Lookup(s)
}

// Len returns the number of distinct entries in the process-wide table.
func Len() int {
	return defaultTable().Len()
}
