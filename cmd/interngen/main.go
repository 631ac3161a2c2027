// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Command interngen precomputes intern digests at build time.
//
// Given a manifest of named strings, source trees to scan for interned
// literals, or both, it emits a Go file with one digest constant per string
// and (optionally) package-level handles interned at init. Typical use is a
// go:generate directive:
//
//	//go:generate interngen --package tags --manifest tags.yaml --output tags_gen.go
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
