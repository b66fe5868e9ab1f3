// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package result

import (
	gotesting "testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/cleantest/internal/testing"
)

func obs(statuses ...testing.ObservationStatus) []testing.Observation {
	var os []testing.Observation
	for _, s := range statuses {
		os = append(os, testing.Observation{Status: s})
	}
	return os
}

func TestStatusAggregation(t *gotesting.T) {
	for _, tc := range []struct {
		name    string
		outcome CaseStatus
		obs     []testing.Observation
		want    CaseStatus
	}{
		{"empty pass", Pass, nil, Pass},
		{"passing observations", Pass, obs(testing.Pass, testing.Pass), Pass},
		{"flaky does not fail", Pass, obs(testing.FailFlaky), Pass},
		{"fail", Pass, obs(testing.Pass, testing.Fail), Fail},
		{"asserted aborts", Pass, obs(testing.FailAsserted), Abort},
		{"abort without failures", Abort, nil, Abort},
		{"abort with passes", Abort, obs(testing.Pass), Abort},
		{"abort beats fail", Abort, obs(testing.Fail), Abort},
		{"asserted beats fail", Pass, obs(testing.Fail, testing.FailAsserted, testing.Pass), Abort},
		{"skip stays skip", Skip, nil, Skip},
	} {
		if got := NewCaseResult("x", tc.outcome, 0, tc.obs).Status; got != tc.want {
			t.Errorf("%s: status = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestPassed(t *gotesting.T) {
	want := map[CaseStatus]bool{Pass: true, Skip: true, Fail: false, Abort: false}
	for s, w := range want {
		if got := s.Passed(); got != w {
			t.Errorf("%v.Passed() = %v; want %v", s, got, w)
		}
	}
}

func TestFallbackResult(t *gotesting.T) {
	r := NewFallbackResult(obs(testing.Fail))
	if r.Name != FallbackName || r.Type != Fallback || r.Status != Fail || r.WallTime != 0 {
		t.Errorf("NewFallbackResult = %+v; want failing fallback named %q", r, FallbackName)
	}
}

func TestOutcomeCounts(t *gotesting.T) {
	o := &Outcome{
		WallTime: time.Second,
		Results: []CaseResult{
			NewCaseResult("a", Pass, 0, nil),
			NewCaseResult("b", Pass, 0, obs(testing.Fail)),
			NewCaseResult("c", Abort, 0, nil),
			NewCaseResult("d", Skip, 0, nil),
			NewFallbackResult(obs(testing.Fail)),
		},
	}
	if got := len(o.Regular()); got != 4 {
		t.Errorf("len(Regular()) = %d; want 4", got)
	}
	if got := o.NumFailed(); got != 2 {
		t.Errorf("NumFailed() = %d; want 2", got)
	}
	if got := o.NumPassed(); got != 2 {
		t.Errorf("NumPassed() = %d; want 2", got)
	}
	want := map[CaseStatus]int{Pass: 1, Fail: 1, Abort: 1, Skip: 1}
	if diff := cmp.Diff(o.Counts(), want); diff != "" {
		t.Errorf("Counts() mismatch (-got +want):\n%s", diff)
	}
	if fb, ok := o.Fallback(); !ok || fb.Name != "unknown" {
		t.Errorf("Fallback() = %+v, %v; want the unknown result", fb, ok)
	}
	if r, ok := o.Find("c"); !ok || r.Status != Abort {
		t.Errorf("Find(c) = %+v, %v; want aborted result", r, ok)
	}
	if _, ok := o.Find("zzz"); ok {
		t.Error("Find(zzz) found a result")
	}
}
