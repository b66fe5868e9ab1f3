// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
	"fmt"
	"strconv"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/errors/stack"
	"go.chromium.org/cleantest/internal/logging"
)

// ErrAborted is returned, wrapped, by an asserted expectation that did not
// hold. A case body returns it to stop early.
var ErrAborted = errors.New("asserted expectation failed")

// Flag modifies how a failed expectation is classified. Flags are passed
// among the description arguments of an expectation.
type Flag int

const (
	// Flaky marks an expectation whose failure is reported but does not
	// fail the case.
	Flaky Flag = iota + 1
	// Asserted marks an expectation whose failure aborts the case.
	Asserted
)

// Evaluation is an evaluated expression that an expectation checks.
type Evaluation interface {
	// Value reports whether the expression holds.
	Value() bool
	// String renders the expression for reports.
	String() string
}

// Evaluate records an expectation on v in o. v is a bool or an Evaluation.
// Flag values among args modify the classification; the remaining args are
// formatted with fmt.Sprint into the description.
//
// The returned error wraps ErrAborted if the expectation is asserted and
// does not hold, and is nil otherwise.
func Evaluate(o *Observer, where stack.Site, v interface{}, args ...interface{}) error {
	ok, expr := evaluate(v)

	var flaky, asserted bool
	var desc []interface{}
	for _, a := range args {
		if f, isFlag := a.(Flag); isFlag {
			switch f {
			case Flaky:
				flaky = true
			case Asserted:
				asserted = true
			default:
				panic(fmt.Sprintf("unknown expectation flag %d", int(f)))
			}
			continue
		}
		desc = append(desc, a)
	}

	status := classify(ok, flaky, asserted)
	o.Observe(Observation{
		Where:       where,
		Status:      status,
		Expression:  logging.ReplaceInvalidUTF8(expr),
		Description: logging.ReplaceInvalidUTF8(fmt.Sprint(desc...)),
	})
	if status == FailAsserted {
		return errors.Wrapf(ErrAborted, "expectation at %v", where)
	}
	return nil
}

// Expect records an expectation on v with the Observer resolved from ctx
// through rt. skip is the number of frames between the user's call site and
// Expect's caller. It panics if no Observer can be resolved, which means an
// expectation ran outside of any test-case.
func Expect(ctx context.Context, rt *Runtime, skip int, v interface{}, args ...interface{}) error {
	where := stack.Caller(skip + 1)
	o, ok := rt.ResolveObserver(ctx)
	if !ok {
		panic(fmt.Sprintf("expectation at %v evaluated outside of a test-case run", where))
	}
	return Evaluate(o, where, v, args...)
}

func classify(ok, flaky, asserted bool) ObservationStatus {
	switch {
	case ok:
		return Pass
	case asserted:
		return FailAsserted
	case flaky:
		return FailFlaky
	default:
		return Fail
	}
}

func evaluate(v interface{}) (bool, string) {
	switch v := v.(type) {
	case Evaluation:
		return v.Value(), v.String()
	case bool:
		return v, strconv.FormatBool(v)
	default:
		return false, fmt.Sprintf("unsupported expectation value of type %T: %v", v, v)
	}
}
