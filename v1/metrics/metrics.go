// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package metrics exposes intern table statistics as Prometheus metrics.
// It lives in its own package so that programs which do not scrape metrics
// do not pull the Prometheus client into their builds.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/open-policy-agent/intern/v1/intern"
)

// Source is the statistics surface of an intern table. Both intern.Table
// and intern.ReclaimingTable satisfy it.
type Source interface {
	Stats() intern.Stats
}

// Collector implements prometheus.Collector over a table's counters.
type Collector struct {
	src Source

	entries *prometheus.Desc
	bytes   *prometheus.Desc
	hits    *prometheus.Desc
	misses  *prometheus.Desc
}

// NewCollector creates a Collector for src. namespace prefixes the metric
// names in the usual Prometheus fashion; empty is allowed.
//
// Register it like any other collector:
//
//	prometheus.MustRegister(metrics.NewCollector(intern.Default(), "myapp"))
func NewCollector(src Source, namespace string) *Collector {
	return &Collector{
		src: src,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "intern", "entries"),
			"Number of distinct interned strings resident in the table.",
			nil, nil),
		bytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "intern", "bytes"),
			"Total content bytes held by the table.",
			nil, nil),
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "intern", "hits_total"),
			"Probes that found an existing entry.",
			nil, nil),
		misses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "intern", "misses_total"),
			"Probes that found no entry.",
			nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.bytes
	ch <- c.hits
	ch <- c.misses
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Entries))
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(s.Bytes))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
}
