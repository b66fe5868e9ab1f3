// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package testing is the API test-case authors register cases and evaluate
// expectations with.
//
// Cases are usually registered from init functions:
//
//	func init() {
//		testing.Suite(testing.NewName("math", "unit"), func() {
//			testing.AddCase(testing.NewName("add"), func(ctx context.Context, o *testing.Observer) error {
//				testing.Expect(ctx, testing.Equal(1+1, 2))
//				if err := testing.Require(ctx, 2 > 1, "ordering"); err != nil {
//					return err
//				}
//				return nil
//			})
//		})
//	}
//
// and run by calling runner.Main from the main package.
//
// Expectations resolve their Observer from ctx. Code that loses the context,
// such as a goroutine started with context.Background, has its expectations
// recorded by a fallback Observer and reported as misattributed. Passing ctx
// along, or calling ExpectIn with the Observer, avoids that.
package testing

import (
	"context"

	"go.chromium.org/cleantest/errors/stack"
	"go.chromium.org/cleantest/internal/testing"
)

type (
	// Name identifies a test-case by path and tags.
	Name = testing.Name
	// Observer collects the observations of one test-case.
	Observer = testing.Observer
	// CaseFunc is the body of a test-case.
	CaseFunc = testing.CaseFunc
	// Evaluation is an evaluated expression an expectation checks.
	Evaluation = testing.Evaluation
	// Flag modifies how a failed expectation is classified.
	Flag = testing.Flag
)

const (
	// Flaky marks an expectation whose failure does not fail the case.
	Flaky = testing.Flaky
	// Asserted marks an expectation whose failure aborts the case.
	Asserted = testing.Asserted
)

// ErrAborted is wrapped by the error an asserted expectation returns when
// it does not hold.
var ErrAborted = testing.ErrAborted

// NewName returns a Name for a "/"-separated path with tags.
func NewName(path string, tags ...string) Name {
	return testing.NewName(path, tags...)
}

// AddCase registers a test-case.
func AddCase(name Name, f CaseFunc) {
	testing.DefaultRuntime().AddCase(name, f)
}

// Suite registers the cases added by f below name.
func Suite(name Name, f func()) {
	testing.DefaultRuntime().Suite(name, f)
}

// AddParamCases registers one case per sample below name.
func AddParamCases[T any](name Name, samples []T, f func(ctx context.Context, o *Observer, sample T) error) {
	testing.AddParamCases(testing.DefaultRuntime(), name, samples, f)
}

// Expect records an expectation on v, a bool or an Evaluation. Flaky and
// Asserted among args change how a failure is classified; the other args
// form the description. The returned error is non-nil only for a failed
// asserted expectation, and the case body should return it.
func Expect(ctx context.Context, v interface{}, args ...interface{}) error {
	return testing.Expect(ctx, testing.DefaultRuntime(), 1, v, args...)
}

// Require is Expect with Asserted.
func Require(ctx context.Context, v interface{}, args ...interface{}) error {
	return testing.Expect(ctx, testing.DefaultRuntime(), 1, v, append([]interface{}{Asserted}, args...)...)
}

// ExpectIn is Expect recording into o explicitly.
func ExpectIn(o *Observer, v interface{}, args ...interface{}) error {
	return testing.Evaluate(o, stack.Caller(1), v, args...)
}

// Equal evaluates whether got and want are equal according to go-cmp.
func Equal(got, want interface{}) Evaluation {
	return testing.Equal(got, want)
}

// NotEqual evaluates whether got and want differ according to go-cmp.
func NotEqual(got, want interface{}) Evaluation {
	return testing.NotEqual(got, want)
}

// Lift wraps an already computed value with its rendering.
func Lift(value bool, text string) Evaluation {
	return testing.Lift(value, text)
}
