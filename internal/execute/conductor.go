// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package execute runs registered test-cases on a pool of workers and
// collects their results.
package execute

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/logging"
	"go.chromium.org/cleantest/internal/metrics"
	"go.chromium.org/cleantest/internal/reporting"
	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
	"go.chromium.org/cleantest/internal/timing"
)

// Phase is the stage a Conductor's run is in.
type Phase int32

const (
	// Idle means no run has started.
	Idle Phase = iota
	// DrainingRegistry means the cases to run are being taken from the
	// registry.
	DrainingRegistry
	// Dispatching means workers are running cases.
	Dispatching
	// Collecting means results of the workers and the fallback Observer are
	// being gathered.
	Collecting
	// Reporting means warnings and the summary are being written.
	Reporting
	// Done means the run has finished.
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case DrainingRegistry:
		return "draining-registry"
	case Dispatching:
		return "dispatching"
	case Collecting:
		return "collecting"
	case Reporting:
		return "reporting"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Setup configures a Conductor. Zero values select defaults.
type Setup struct {
	// Runtime provides the registry and the fallback slot. Defaults to
	// testing.DefaultRuntime().
	Runtime *testing.Runtime
	// Output receives the console report. Defaults to io.Discard.
	Output io.Writer
	Colors *reporting.ColorTable
	// Workers is the number of cases run concurrently. 0 means one per
	// logical CPU.
	Workers     int
	Buffering   reporting.BufferingMode
	ShowPassing bool
	// Filter decides which cases run. Defaults to enabling every case.
	Filter *filter.NameFilter
	Clock  clock.Clock
	// Metrics receives the outcome if non-nil.
	Metrics *metrics.Recorder
}

// Conductor runs all cases registered in a Runtime.
type Conductor struct {
	setup   Setup
	workers int
	output  *reporting.SyncWriter
	phase   atomic.Int32
}

// New returns a Conductor for setup.
func New(setup Setup) *Conductor {
	if setup.Runtime == nil {
		setup.Runtime = testing.DefaultRuntime()
	}
	if setup.Output == nil {
		setup.Output = io.Discard
	}
	if setup.Colors == nil {
		setup.Colors = reporting.NewColorTable(false)
	}
	if setup.Filter == nil {
		setup.Filter = filter.MustNew()
	}
	if setup.Clock == nil {
		setup.Clock = clock.NewClock()
	}
	return &Conductor{
		setup:   setup,
		workers: normalizeWorkers(setup.Workers),
		output:  reporting.NewSyncWriter(setup.Output),
	}
}

// normalizeWorkers returns n, or the number of logical CPUs if n is not
// positive.
func normalizeWorkers(n int) int {
	if n > 0 {
		return n
	}
	if c, err := cpu.Counts(true); err == nil && c > 0 {
		return c
	}
	if c := runtime.NumCPU(); c > 0 {
		return c
	}
	return 1
}

// Workers returns the number of workers runs use.
func (c *Conductor) Workers() int {
	return c.workers
}

// Phase returns the phase of the current or last run.
func (c *Conductor) Phase() Phase {
	return Phase(c.phase.Load())
}

func (c *Conductor) enter(ctx context.Context, p Phase) (context.Context, *timing.Stage) {
	c.phase.Store(int32(p))
	return timing.Start(ctx, p.String())
}

func (c *Conductor) reporterSetup() reporting.ReporterSetup {
	return reporting.ReporterSetup{
		Output:      c.output,
		Colors:      c.setup.Colors,
		Buffering:   c.setup.Buffering,
		ShowPassing: c.setup.ShowPassing,
	}
}

// Run takes every case registered so far and runs it. Cases registered
// while the run is in progress are left in the registry and reported as
// late.
func (c *Conductor) Run(ctx context.Context) *result.Outcome {
	s := &c.setup
	start := s.Clock.Now()
	runID := uuid.NewString()

	_, st := c.enter(ctx, DrainingRegistry)
	cases := s.Runtime.Registry().Drain()
	st.End()

	reporting.WriteRunning(c.output, s.Colors, len(cases))
	logging.Infof(ctx, "Run %s: %d test-cases on %d workers", runID, len(cases), c.workers)

	fallbackReporter := reporting.NewCaseReporter(c.reporterSetup())
	fallback := testing.NewObserver(fallbackReporter)
	restoreFallback := s.Runtime.InstallFallback(fallback)

	dctx, st := c.enter(ctx, Dispatching)
	perWorker := c.dispatch(dctx, cases)
	st.End()
	restoreFallback()

	_, st = c.enter(ctx, Collecting)
	var results []result.CaseResult
	for _, rs := range perWorker {
		results = append(results, rs...)
	}
	obs := fallback.Release()
	if err := fallbackReporter.Close(); err != nil {
		logging.Infof(ctx, "Failed to write fallback observations: %v", err)
	}
	if len(obs) > 0 {
		reporting.WriteFallbackWarning(c.output, s.Colors)
		logging.Infof(ctx, "%d observations were not attributed to a test-case", len(obs))
		results = append(results, result.NewFallbackResult(obs))
	}
	st.End()

	_, st = c.enter(ctx, Reporting)
	defer st.End()
	outcome := &result.Outcome{
		RunID:    runID,
		WallTime: s.Clock.Since(start),
		Results:  results,
	}

	var late []string
	for _, lc := range s.Runtime.Registry().Cases() {
		late = append(late, lc.Name.Path())
	}
	reporting.WriteLateRegistration(c.output, s.Colors, late)
	if err := reporting.WriteSummary(c.output, s.Colors, outcome); err != nil {
		logging.Infof(ctx, "Failed to write summary: %v", err)
	}
	s.Metrics.RecordLate(len(late))
	s.Metrics.RecordOutcome(outcome)

	c.phase.Store(int32(Done))
	return outcome
}

// dispatch runs cases on the workers and returns the results of each
// worker.
func (c *Conductor) dispatch(ctx context.Context, cases []*testing.Case) [][]result.CaseResult {
	s := &c.setup
	var cursor atomic.Int64
	perWorker := make([][]result.CaseResult, c.workers)

	var g errgroup.Group
	for i := 0; i < c.workers; i++ {
		i := i
		w := &worker{
			cases:  cases,
			cursor: &cursor,
			filter: s.Filter,
			eval: NewCaseEvaluator(s.Runtime, reporting.NewCaseReporter(c.reporterSetup()),
				s.Clock, c.workers == 1),
		}
		wctx := logging.SetLogPrefix(ctx, fmt.Sprintf("worker %d: ", i))
		g.Go(func() error {
			perWorker[i] = w.run(wctx)
			if err := w.eval.Close(); err != nil {
				return errors.Wrapf(err, "worker %d", i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Infof(ctx, "Failed to write report: %v", err)
	}
	return perWorker
}
