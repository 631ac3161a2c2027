// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/open-policy-agent/intern/v1/intern"
)

func TestCollector(t *testing.T) {
	tbl := intern.New()
	tbl.Intern("alpha")
	tbl.Intern("beta")
	tbl.Intern("alpha") // hit

	c := NewCollector(tbl, "test")

	expected := `
# HELP test_intern_entries Number of distinct interned strings resident in the table.
# TYPE test_intern_entries gauge
test_intern_entries 2
# HELP test_intern_bytes Total content bytes held by the table.
# TYPE test_intern_bytes gauge
test_intern_bytes 9
# HELP test_intern_hits_total Probes that found an existing entry.
# TYPE test_intern_hits_total counter
test_intern_hits_total 1
# HELP test_intern_misses_total Probes that found no entry.
# TYPE test_intern_misses_total counter
test_intern_misses_total 2
`

	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Fatal(err)
	}
}

func TestCollectorRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(intern.New(), "reg")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if n := testutil.CollectAndCount(NewCollector(intern.New(), "reg")); n != 4 {
		t.Fatalf("expected 4 metrics, got %d", n)
	}
}

func TestCollectorReclaimingSource(t *testing.T) {
	rt := intern.NewReclaiming()
	h := rt.Intern("gamma")
	defer rt.Release(h)

	c := NewCollector(rt, "")
	if n := testutil.CollectAndCount(c); n != 4 {
		t.Fatalf("expected 4 metrics, got %d", n)
	}
}
