// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"fmt"

	"go.chromium.org/cleantest/errors/stack"
)

// ObservationStatus is the outcome of one evaluated expectation. Larger
// values are more severe.
type ObservationStatus int

const (
	// Pass means the expectation held.
	Pass ObservationStatus = iota
	// FailFlaky means a flaky expectation did not hold. It is reported but
	// does not fail the case.
	FailFlaky
	// Fail means the expectation did not hold.
	Fail
	// FailAsserted means an asserted expectation did not hold and the case
	// was asked to abort.
	FailAsserted
)

// String returns the status name used in reports.
func (s ObservationStatus) String() string {
	switch s {
	case Pass:
		return "pass"
	case FailFlaky:
		return "fail_flaky"
	case Fail:
		return "fail"
	case FailAsserted:
		return "fail_asserted"
	default:
		return fmt.Sprintf("ObservationStatus(%d)", int(s))
	}
}

// Failed reports whether s is any kind of failure.
func (s ObservationStatus) Failed() bool {
	return s != Pass
}

// Observation records one evaluated expectation.
type Observation struct {
	Where       stack.Site
	Status      ObservationStatus
	Expression  string
	Description string
}
