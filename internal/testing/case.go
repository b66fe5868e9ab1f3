// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
	"sync"

	"go.chromium.org/cleantest/errors"
)

// CaseFunc is the body of a test-case. ctx carries o, so expectations
// evaluated with ctx, or with o directly, are attributed to the case.
// Returning a non-nil error aborts the case.
type CaseFunc func(ctx context.Context, o *Observer) error

// Case is a registered test-case. Its body runs at most once.
type Case struct {
	Name Name

	mu  sync.Mutex
	run CaseFunc
}

// NewCase returns a Case named name running f.
func NewCase(name Name, f CaseFunc) *Case {
	return &Case{Name: name, run: f}
}

// Run invokes the body and releases it. Later calls return an error
// without running anything.
func (c *Case) Run(ctx context.Context, o *Observer) error {
	c.mu.Lock()
	f := c.run
	c.run = nil
	c.mu.Unlock()

	if f == nil {
		return errors.Errorf("test-case %s has already been run", c.Name.Path())
	}
	return f(ctx, o)
}

// Consumed reports whether the body has been released by Run.
func (c *Case) Consumed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run == nil
}
