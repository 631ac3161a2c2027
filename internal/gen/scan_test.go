// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "a.go"), `package a

import "github.com/open-policy-agent/intern/v1/intern"

var (
	host = intern.Intern("host")
	port = intern.Intern("port")
	dup  = intern.Intern("host")
)

func f(s string) intern.Handle {
	// Non-literal arguments are skipped, not an error.
	return intern.Intern(s)
}
`)
	writeFile(t, filepath.Join(dir, "sub", "b.go"), `package sub

import "github.com/open-policy-agent/intern/v1/intern"

var contentType = intern.Intern("content-type")
`)
	// Vendor trees are skipped.
	writeFile(t, filepath.Join(dir, "vendor", "v.go"), `package v

import "github.com/open-policy-agent/intern/v1/intern"

var skipped = intern.Intern("vendored")
`)

	syms, err := Scan([]string{dir}, "intern.Intern")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []Symbol{
		{Name: "ContentType", Value: "content-type"},
		{Name: "Host", Value: "host"},
		{Name: "Port", Value: "port"},
	}
	if diff := cmp.Diff(want, syms); diff != "" {
		t.Errorf("unexpected symbols (-want +got):\n%s", diff)
	}
}

func TestScanBareFunction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), `package a

func tag(s string) string { return s }

var x = tag("alpha")
`)

	syms, err := Scan([]string{dir}, "tag")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []Symbol{{Name: "Alpha", Value: "alpha"}}
	if diff := cmp.Diff(want, syms); diff != "" {
		t.Errorf("unexpected symbols (-want +got):\n%s", diff)
	}
}

func TestScanParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.go"), "package !!!")

	if _, err := Scan([]string{dir}, "intern.Intern"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestScanNameCollision(t *testing.T) {
	got, err := nameValues(map[string]struct{}{
		"a-b": {},
		"a_b": {},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []Symbol{
		{Name: "AB", Value: "a-b"},
		{Name: "AB2", Value: "a_b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected symbols (-want +got):\n%s", diff)
	}
}
