// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
	"sync"
	"sync/atomic"
)

// Runtime owns the process-wide state of the framework: the registry, the
// name prefix of the suite currently being registered, and the fallback
// Observer slot.
//
// Test-case authors use the default Runtime implicitly through the public
// testing package. Unit tests of the framework create their own Runtime and
// install it with SetDefaultRuntimeForTesting.
type Runtime struct {
	registry *Registry

	mu    sync.Mutex // protects suite
	suite Name

	fallback atomic.Pointer[Observer]
}

// NewRuntime returns a Runtime with an empty registry and no fallback.
func NewRuntime() *Runtime {
	return &Runtime{registry: NewRegistry()}
}

var defaultRuntime atomic.Pointer[Runtime]

func init() {
	defaultRuntime.Store(NewRuntime())
}

// DefaultRuntime returns the process-wide Runtime.
func DefaultRuntime() *Runtime {
	return defaultRuntime.Load()
}

// SetDefaultRuntimeForTesting temporarily replaces the process-wide Runtime
// with rt. The caller must call the returned function later to restore the
// original one.
func SetDefaultRuntimeForTesting(rt *Runtime) (restore func()) {
	orig := defaultRuntime.Swap(rt)
	return func() {
		defaultRuntime.Store(orig)
	}
}

// Registry returns the registry of rt.
func (rt *Runtime) Registry() *Registry {
	return rt.registry
}

// AddCase registers a case named name, prefixed by the enclosing suites,
// and returns it.
func (rt *Runtime) AddCase(name Name, f CaseFunc) *Case {
	rt.mu.Lock()
	full := rt.suite.Join(name)
	rt.mu.Unlock()

	c := NewCase(full, f)
	rt.registry.Add(c)
	return c
}

// Suite calls f with name appended to the registration prefix. Cases
// registered by f, directly or through nested suites, are named below name.
// Suite is meant for init-time registration; suites registered concurrently
// from several goroutines would share the prefix.
func (rt *Runtime) Suite(name Name, f func()) {
	rt.mu.Lock()
	prev := rt.suite
	rt.suite = prev.Join(name)
	rt.mu.Unlock()

	defer func() {
		rt.mu.Lock()
		rt.suite = prev
		rt.mu.Unlock()
	}()
	f()
}

// InstallFallback makes o the fallback Observer until the returned function
// is called, which reinstates the previous one. Installations nest.
func (rt *Runtime) InstallFallback(o *Observer) (restore func()) {
	prev := rt.fallback.Swap(o)
	return func() {
		rt.fallback.Store(prev)
	}
}

// Fallback returns the current fallback Observer, or nil.
func (rt *Runtime) Fallback() *Observer {
	return rt.fallback.Load()
}

// ResolveObserver returns the Observer an expectation evaluated with ctx is
// recorded by: the one attached to ctx, else the fallback.
func (rt *Runtime) ResolveObserver(ctx context.Context) (*Observer, bool) {
	if o, ok := ObserverFromContext(ctx); ok {
		return o, true
	}
	if o := rt.Fallback(); o != nil {
		return o, true
	}
	return nil, false
}
