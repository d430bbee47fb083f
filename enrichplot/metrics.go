// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bioplot/go-enrich/enrich"
)

// runMetrics counts what one enrichplot run did. They are written
// once, as a Prometheus text file for a node exporter to collect.
type runMetrics struct {
	reg     *prometheus.Registry
	files   *prometheus.CounterVec
	rows    *prometheus.CounterVec
	lastRun prometheus.Gauge
}

func newRunMetrics() *runMetrics {
	m := &runMetrics{
		reg: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enrichplot_files_total",
				Help: "Input files processed, by result (ok, malformed, empty, error).",
			},
			[]string{"result"},
		),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enrichplot_rows_total",
				Help: "Enrichment rows seen at each pipeline stage (loaded, filtered, plotted).",
			},
			[]string{"stage"},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "enrichplot_last_run_timestamp_seconds",
				Help: "Unix time the last run finished.",
			},
		),
	}
	m.reg.MustRegister(m.files, m.rows, m.lastRun)
	return m
}

func (m *runMetrics) addRows(stage string, n int) {
	m.rows.WithLabelValues(stage).Add(float64(n))
}

// fileDone records the outcome of one input file.
func (m *runMetrics) fileDone(err error) {
	m.files.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case enrich.IsMalformed(err):
		return "malformed"
	case errors.Is(err, enrich.ErrNoRows):
		return "empty"
	}
	return "error"
}

// write stamps the run time and writes all metrics to path.
func (m *runMetrics) write(path string) error {
	m.lastRun.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.reg)
}
