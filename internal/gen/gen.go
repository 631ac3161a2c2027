// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package gen generates Go source files with precomputed intern digests.
//
// Go has no general constant evaluation, so the library's "constant" path
// is a build step: given a set of named strings, gen emits their FNV-1a
// digests as ordinary Go constants (and, optionally, package-level handles
// interned once at init). Hot-path code can then switch on a digest or
// compare against a pre-interned handle without paying the runtime hashing
// or interning cost for fixed tags.
//
// The digests are computed with the same v1/hash implementation the intern
// table uses at runtime, so generated constants always agree with runtime
// digests.
package gen

import (
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strconv"

	"github.com/open-policy-agent/intern/v1/hash"
	"github.com/open-policy-agent/intern/v1/util"
)

// Symbol is one named string to generate constants for.
type Symbol struct {
	// Name is the Go identifier base. The digest constant is <Name>Digest;
	// the optional handle var is plain <Name>.
	Name string
	// Value is the string content.
	Value string
}

// Options controls rendering.
type Options struct {
	// Package is the package name of the generated file.
	Package string
	// Handles additionally emits pre-interned Handle vars for each symbol.
	Handles bool
}

// FromManifest parses a YAML or JSON manifest mapping Go identifiers to
// string values and returns the symbols sorted by name.
func FromManifest(bs []byte) ([]Symbol, error) {
	var m map[string]string
	if err := util.Unmarshal(bs, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	syms := make([]Symbol, 0, len(m))
	for name, value := range m {
		if !token.IsIdentifier(name) {
			return nil, fmt.Errorf("manifest key %q is not a valid Go identifier", name)
		}
		syms = append(syms, Symbol{Name: name, Value: value})
	}

	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms, nil
}

// Render produces a gofmt'd Go source file declaring a digest constant for
// every symbol and, when opt.Handles is set, a pre-interned handle var.
func Render(syms []Symbol, opt Options) ([]byte, error) {
	if opt.Package == "" {
		return nil, fmt.Errorf("output package name is required")
	}
	if !token.IsIdentifier(opt.Package) {
		return nil, fmt.Errorf("package name %q is not a valid Go identifier", opt.Package)
	}
	syms, err := dedupe(syms)
	if err != nil {
		return nil, err
	}

	buf := util.GetBuffer()
	defer util.PutBuffer(buf)

	fmt.Fprintf(buf, "// Code generated by interngen. DO NOT EDIT.\n\n")
	fmt.Fprintf(buf, "package %s\n\n", opt.Package)

	if opt.Handles {
		fmt.Fprintf(buf, "import \"github.com/open-policy-agent/intern/v1/intern\"\n\n")
	}

	if len(syms) > 0 {
		fmt.Fprintf(buf, "// FNV-1a 64 digests, precomputed at build time. Each value equals\n")
		fmt.Fprintf(buf, "// hash.Digest of the quoted string.\n")
		fmt.Fprintf(buf, "const (\n")
		for _, s := range syms {
			fmt.Fprintf(buf, "\t%sDigest uint64 = 0x%016x // %s\n", s.Name, hash.Digest(s.Value), strconv.Quote(s.Value))
		}
		fmt.Fprintf(buf, ")\n")

		if opt.Handles {
			fmt.Fprintf(buf, "\n// Handles interned once at package initialization.\n")
			fmt.Fprintf(buf, "var (\n")
			for _, s := range syms {
				fmt.Fprintf(buf, "\t%s = intern.Intern(%s)\n", s.Name, strconv.Quote(s.Value))
			}
			fmt.Fprintf(buf, ")\n")
		}
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}

// dedupe drops repeated name/value pairs (a manifest entry and a scanned
// literal may describe the same string) and rejects one name bound to two
// different values.
func dedupe(syms []Symbol) ([]Symbol, error) {
	byName := make(map[string]string, len(syms))
	out := syms[:0]
	for _, s := range syms {
		if prev, ok := byName[s.Name]; ok {
			if prev != s.Value {
				return nil, fmt.Errorf("symbol %s defined twice with different values (%q, %q)", s.Name, prev, s.Value)
			}
			continue
		}
		byName[s.Name] = s.Value
		out = append(out, s)
	}
	return out, nil
}
