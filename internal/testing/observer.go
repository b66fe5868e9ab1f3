// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"sync"
)

// ObservationReporter displays observations as they are recorded.
type ObservationReporter interface {
	ReportObservation(o Observation)
}

// Observer collects the observations of one test-case.
//
// A case body may hand its Observer to goroutines it starts. Observe is
// safe for concurrent use; concurrent observations are recorded in the
// order the lock is granted.
type Observer struct {
	mu           sync.Mutex
	reporter     ObservationReporter
	observations []Observation
	released     bool
	successor    *Observer
}

// NewObserver returns an Observer forwarding to r. r may be nil.
func NewObserver(r ObservationReporter) *Observer {
	return &Observer{reporter: r}
}

// Observe records ob and forwards it to the reporter. After Release, ob is
// handed to the successor if one is set. Without a successor it is still
// forwarded to the reporter but no longer recorded.
func (o *Observer) Observe(ob Observation) {
	o.mu.Lock()
	if o.released && o.successor != nil {
		next := o.successor
		o.mu.Unlock()
		next.Observe(ob)
		return
	}
	defer o.mu.Unlock()
	if !o.released {
		o.observations = append(o.observations, ob)
	}
	if o.reporter != nil {
		o.reporter.ReportObservation(ob)
	}
}

// SetSuccessor makes next receive the observations o gets after Release.
// Goroutines that outlive their case keep a reference to its Observer, and
// their expectations end up in next instead of being lost. next may be nil.
func (o *Observer) SetSuccessor(next *Observer) {
	if next == o {
		next = nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.successor = next
}

// Len returns the number of recorded observations.
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.observations)
}

// Release returns the recorded observations in order and stops recording.
// Subsequent calls return nil.
func (o *Observer) Release() []Observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	obs := o.observations
	o.observations = nil
	o.released = true
	return obs
}
