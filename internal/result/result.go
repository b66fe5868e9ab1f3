// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package result defines the outcome of running test-cases.
package result

import (
	"fmt"
	"time"

	"go.chromium.org/cleantest/internal/testing"
)

// CaseStatus is the overall status of one test-case.
type CaseStatus int

const (
	// Pass means the case ran and nothing failed.
	Pass CaseStatus = iota
	// Fail means an expectation failed.
	Fail
	// Abort means the case stopped early: it returned an error, panicked,
	// or an asserted expectation failed.
	Abort
	// Skip means a filter disabled the case and it did not run.
	Skip
)

func (s CaseStatus) String() string {
	switch s {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Abort:
		return "abort"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("CaseStatus(%d)", int(s))
	}
}

// Passed reports whether s counts as passing. Skipped cases pass.
func (s CaseStatus) Passed() bool {
	return s == Pass || s == Skip
}

// WorstObservation returns the case status implied by the most severe of
// obs. Flaky failures do not fail a case.
func WorstObservation(obs []testing.Observation) CaseStatus {
	worst := Pass
	for _, o := range obs {
		var s CaseStatus
		switch o.Status {
		case testing.Pass, testing.FailFlaky:
			s = Pass
		case testing.Fail:
			s = Fail
		case testing.FailAsserted:
			s = Abort
		default:
			panic(fmt.Sprintf("invalid observation status %d", int(o.Status)))
		}
		if s > worst {
			worst = s
		}
	}
	return worst
}

// Type distinguishes genuine per-case results from the synthetic result
// holding misattributed observations.
type Type int

const (
	// Regular is the result of a registered case.
	Regular Type = iota
	// Fallback collects observations no case was attributed.
	Fallback
)

func (t Type) String() string {
	switch t {
	case Regular:
		return "regular"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// FallbackName is the name of the Fallback result.
const FallbackName = "unknown"

// CaseResult is the outcome of one test-case.
type CaseResult struct {
	Name         string
	Status       CaseStatus
	WallTime     time.Duration
	Observations []testing.Observation
	Type         Type
}

// NewCaseResult returns a Regular result whose status is the more severe of
// outcome and the worst of obs. outcome is Pass or Abort for a case that
// ran, or Skip for one that did not.
func NewCaseResult(name string, outcome CaseStatus, wall time.Duration, obs []testing.Observation) CaseResult {
	status := outcome
	if outcome != Skip {
		if w := WorstObservation(obs); w > status {
			status = w
		}
	}
	return CaseResult{
		Name:         name,
		Status:       status,
		WallTime:     wall,
		Observations: obs,
		Type:         Regular,
	}
}

// NewFallbackResult returns the Fallback result for misattributed
// observations.
func NewFallbackResult(obs []testing.Observation) CaseResult {
	r := NewCaseResult(FallbackName, Pass, 0, obs)
	r.Type = Fallback
	return r
}

// Outcome is the result of one run.
type Outcome struct {
	RunID    string
	WallTime time.Duration
	Results  []CaseResult
}

// Regular returns the regular results.
func (o *Outcome) Regular() []CaseResult {
	var rs []CaseResult
	for _, r := range o.Results {
		if r.Type == Regular {
			rs = append(rs, r)
		}
	}
	return rs
}

// Fallback returns the fallback result, if any.
func (o *Outcome) Fallback() (CaseResult, bool) {
	for _, r := range o.Results {
		if r.Type == Fallback {
			return r, true
		}
	}
	return CaseResult{}, false
}

// Find returns the first result named name.
func (o *Outcome) Find(name string) (CaseResult, bool) {
	for _, r := range o.Results {
		if r.Name == name {
			return r, true
		}
	}
	return CaseResult{}, false
}

// Counts tallies regular results by status.
func (o *Outcome) Counts() map[CaseStatus]int {
	counts := make(map[CaseStatus]int)
	for _, r := range o.Regular() {
		counts[r.Status]++
	}
	return counts
}

// NumFailed returns the number of regular results that did not pass.
func (o *Outcome) NumFailed() int {
	n := 0
	for _, r := range o.Regular() {
		if !r.Status.Passed() {
			n++
		}
	}
	return n
}

// NumPassed returns the number of regular results that passed, skips
// included.
func (o *Outcome) NumPassed() int {
	return len(o.Regular()) - o.NumFailed()
}
