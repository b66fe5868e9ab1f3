// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"sync"
)

// Registry holds test-cases in registration order.
//
// Cases are usually registered from init functions, but a test-case body
// may register further cases while a run is in progress, so all methods are
// safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	cases []*Case
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends c to the registry.
func (r *Registry) Add(c *Case) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases = append(r.cases, c)
}

// Len returns the number of registered cases.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cases)
}

// Cases returns a snapshot of the registered cases without removing them.
func (r *Registry) Cases() []*Case {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Case(nil), r.cases...)
}

// Drain removes and returns all registered cases, leaving the registry empty.
func (r *Registry) Drain() []*Case {
	r.mu.Lock()
	defer r.mu.Unlock()
	cases := r.cases
	r.cases = nil
	return cases
}
