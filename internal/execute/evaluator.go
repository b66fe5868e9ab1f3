// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package execute

import (
	"context"
	"fmt"
	"runtime/debug"

	"code.cloudfoundry.org/clock"

	"go.chromium.org/cleantest/internal/logging"
	"go.chromium.org/cleantest/internal/reporting"
	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
)

// CaseEvaluator runs test-cases one at a time and reports them through its
// own CaseReporter.
type CaseEvaluator struct {
	rt       *testing.Runtime
	reporter *reporting.CaseReporter
	clock    clock.Clock
	// ownFallback makes the Observer of the running case the fallback of rt.
	// It is only sound when no other case runs concurrently.
	ownFallback bool
}

// NewCaseEvaluator returns an evaluator reporting to reporter. If
// ownFallback is true, expectations that resolve to the fallback Observer
// of rt are attributed to the case being evaluated.
func NewCaseEvaluator(rt *testing.Runtime, reporter *reporting.CaseReporter, clk clock.Clock, ownFallback bool) *CaseEvaluator {
	return &CaseEvaluator{rt: rt, reporter: reporter, clock: clk, ownFallback: ownFallback}
}

// Evaluate runs the body of c and returns its result. A body returning an
// error, panicking or calling runtime.Goexit aborts the case.
func (e *CaseEvaluator) Evaluate(ctx context.Context, c *testing.Case) result.CaseResult {
	name := c.Name.Path()
	o := testing.NewObserver(e.reporter)
	// Expectations reaching o after the case ended belong to the run's
	// fallback, not to the case this evaluator runs next.
	o.SetSuccessor(e.rt.Fallback())
	e.reporter.Start(name)

	start := e.clock.Now()
	reason, aborted := e.runBody(ctx, c, o)
	wall := e.clock.Since(start)

	outcome := result.Pass
	if aborted {
		outcome = result.Abort
		e.reporter.Abort(reason)
		logging.Debugf(ctx, "Test-case %s aborted: %s", name, reason)
	}
	res := result.NewCaseResult(name, outcome, wall, o.Release())
	e.reporter.Stop(name, res.Status, wall)
	return res
}

// Close flushes the evaluator's reporter.
func (e *CaseEvaluator) Close() error {
	return e.reporter.Close()
}

// runBody calls the body of c on a new goroutine and waits for it.
func (e *CaseEvaluator) runBody(ctx context.Context, c *testing.Case, o *testing.Observer) (reason string, aborted bool) {
	if e.ownFallback {
		restore := e.rt.InstallFallback(o)
		defer restore()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		returned := false
		defer func() {
			if val := recover(); val != nil {
				logging.Debugf(ctx, "Test-case %s panicked:\n%s", c.Name.Path(), debug.Stack())
				reason, aborted = fmt.Sprintf("Panic: %v", val), true
				return
			}
			if !returned {
				reason, aborted = "Test-case body exited its goroutine", true
			}
		}()

		err := c.Run(testing.NewContext(ctx, o), o)
		returned = true
		if err != nil {
			reason, aborted = err.Error(), true
		}
	}()
	<-done
	return reason, aborted
}
