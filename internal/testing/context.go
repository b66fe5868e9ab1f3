// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"context"
)

// observerKey is the type of the key used for attaching an Observer to a
// context.Context.
type observerKey struct{}

// NewContext returns a context carrying o. Expectations evaluated with the
// returned context are recorded by o.
func NewContext(ctx context.Context, o *Observer) context.Context {
	return context.WithValue(ctx, observerKey{}, o)
}

// ObserverFromContext returns the Observer attached to ctx, if any.
func ObserverFromContext(ctx context.Context) (*Observer, bool) {
	o, ok := ctx.Value(observerKey{}).(*Observer)
	return o, ok && o != nil
}
