// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "tags.yaml")
	output := filepath.Join(dir, "tags_gen.go")

	if err := os.WriteFile(manifest, []byte("TagHello: hello\nTagWorld: world\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(params{
		output:   output,
		pkg:      "tags",
		manifest: manifest,
	}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	bs, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	src := string(bs)

	for _, want := range []string{
		"package tags",
		"TagHelloDigest uint64 = 0xa430d84680aabd0b",
		"TagWorldDigest uint64 = 0x4f59ff5e730c8af3",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated file lacks %q:\n%s", want, src)
		}
	}
}

func TestRunScan(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	output := filepath.Join(dir, "out_gen.go")

	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	code := `package app

import "github.com/open-policy-agent/intern/v1/intern"

var tag = intern.Intern("scanned-tag")
`
	if err := os.WriteFile(filepath.Join(src, "app.go"), []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(params{
		output:  output,
		pkg:     "app",
		fn:      "intern.Intern",
		handles: true,
	}, []string{src})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	bs, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	out := string(bs)

	for _, want := range []string{
		"ScannedTagDigest uint64",
		`ScannedTag = intern.Intern("scanned-tag")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated file lacks %q:\n%s", want, out)
		}
	}
}

func TestRunValidation(t *testing.T) {
	if err := run(params{pkg: ""}, nil); err == nil {
		t.Error("expected error for missing package")
	}
	if err := run(params{pkg: "p"}, nil); err == nil {
		t.Error("expected error for no inputs")
	}
}
