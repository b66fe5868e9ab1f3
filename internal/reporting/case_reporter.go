// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
)

// BufferingMode controls when a CaseReporter's output reaches the console.
type BufferingMode int

const (
	// BufferingOff writes every event as soon as it happens. Lines of
	// concurrently running cases interleave.
	BufferingOff BufferingMode = iota
	// BufferingTestcase holds a case's lines back until it stops and then
	// writes them in one block. Output of a case that crashes the process
	// is lost.
	BufferingTestcase
)

func (m BufferingMode) String() string {
	switch m {
	case BufferingOff:
		return "off"
	case BufferingTestcase:
		return "testcase"
	default:
		return fmt.Sprintf("BufferingMode(%d)", int(m))
	}
}

// ParseBufferingMode parses the String form of a BufferingMode.
func ParseBufferingMode(s string) (BufferingMode, error) {
	switch s {
	case "off":
		return BufferingOff, nil
	case "testcase":
		return BufferingTestcase, nil
	default:
		return 0, errors.Errorf("unknown buffering mode %q (want off or testcase)", s)
	}
}

var observationKinds = map[testing.ObservationStatus]string{
	testing.Pass:         "Passing expectation",
	testing.FailFlaky:    "Failure (flaky)",
	testing.Fail:         "Failure",
	testing.FailAsserted: "Failure (asserted)",
}

// ReporterSetup configures a CaseReporter.
type ReporterSetup struct {
	// Output receives the report. Reporters of concurrently running cases
	// share it, so it should be a SyncWriter.
	Output      io.Writer
	Colors      *ColorTable
	Buffering   BufferingMode
	ShowPassing bool
}

// CaseReporter formats the events of the cases one evaluator runs.
//
// Observations may arrive from goroutines a case started, so all methods
// are safe for concurrent use.
type CaseReporter struct {
	setup ReporterSetup

	mu  sync.Mutex
	buf bytes.Buffer
	err error
}

// NewCaseReporter returns a reporter for setup.
func NewCaseReporter(setup ReporterSetup) *CaseReporter {
	if setup.Colors == nil {
		setup.Colors = NewColorTable(false)
	}
	return &CaseReporter{setup: setup}
}

// Start reports that a case named name starts.
func (r *CaseReporter) Start(name string) {
	r.emit(fmt.Sprintf("%s %s\n", BadgeRun, name), false)
}

// ReportObservation reports an observation of the running case.
func (r *CaseReporter) ReportObservation(o testing.Observation) {
	if o.Status == testing.Pass && !r.setup.ShowPassing {
		return
	}
	kind, ok := observationKinds[o.Status]
	if !ok {
		panic(fmt.Sprintf("invalid observation status %d", int(o.Status)))
	}
	if o.Status.Failed() {
		kind = r.setup.Colors.Paint(Bad, kind)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s in %v\n%s\n", kind, o.Where, o.Expression)
	if o.Description != "" {
		fmt.Fprintf(&sb, "%s\n", o.Description)
	}
	r.emit(sb.String(), false)
}

// Abort reports why the running case stopped early.
func (r *CaseReporter) Abort(reason string) {
	r.emit(fmt.Sprintf("%s %s\n", r.setup.Colors.Paint(Bad, BadgeAbort), reason), false)
}

// Stop reports that a case finished, and flushes the case's buffered lines.
func (r *CaseReporter) Stop(name string, status result.CaseStatus, wall time.Duration) {
	badge, color := StatusBadge(status)
	r.emit(fmt.Sprintf("%s %s (%s)\n", r.setup.Colors.Paint(color, badge), name, FormatDuration(wall)), true)
}

// Close flushes lines still buffered, such as observations reported to a
// fallback Observer, and returns the first write error.
func (r *CaseReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
	return r.err
}

func (r *CaseReporter) emit(s string, flush bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.WriteString(s)
	if flush || r.setup.Buffering == BufferingOff {
		r.flushLocked()
	}
}

func (r *CaseReporter) flushLocked() {
	if r.buf.Len() == 0 {
		return
	}
	if _, err := r.setup.Output.Write(r.buf.Bytes()); err != nil && r.err == nil {
		r.err = err
	}
	r.buf.Reset()
}
