// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package metrics exports run statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/result"
)

// Namespace prefixes every metric name.
const Namespace = "cleantest"

// Recorder accumulates metrics of one or more runs in its own registry.
// A nil *Recorder records nothing.
type Recorder struct {
	reg *prometheus.Registry

	cases         *prometheus.CounterVec
	observations  *prometheus.CounterVec
	caseDuration  prometheus.Histogram
	runDuration   prometheus.Gauge
	late          prometheus.Counter
	misattributed prometheus.Counter
}

// NewRecorder returns a Recorder backed by a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		cases: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cases_total",
			Help:      "Count of finished test-cases",
		}, []string{"status"}),
		observations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "observations_total",
			Help:      "Count of evaluated expectations",
		}, []string{"status"}),
		caseDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "case_duration_seconds",
			Help:      "Wall time of test-case bodies",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		runDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		late: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "late_registrations_total",
			Help:      "Count of test-cases registered while a run was in progress",
		}),
		misattributed: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "misattributed_observations_total",
			Help:      "Count of observations recorded at the fallback observer",
		}),
	}
}

// Registry returns the registry holding r's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// RecordOutcome adds the results of a finished run.
func (r *Recorder) RecordOutcome(o *result.Outcome) {
	if r == nil {
		return
	}
	for _, res := range o.Results {
		if res.Type == result.Fallback {
			r.misattributed.Add(float64(len(res.Observations)))
			continue
		}
		r.cases.WithLabelValues(res.Status.String()).Inc()
		if res.Status != result.Skip {
			r.caseDuration.Observe(res.WallTime.Seconds())
		}
		for _, ob := range res.Observations {
			r.observations.WithLabelValues(ob.Status.String()).Inc()
		}
	}
	r.runDuration.Set(o.WallTime.Seconds())
}

// RecordLate adds n late registrations.
func (r *Recorder) RecordLate(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.late.Add(float64(n))
}

// WriteTextfile writes all metrics to path in the text exposition format
// read by the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return errors.New("no metrics recorder")
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
