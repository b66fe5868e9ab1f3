// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package logging_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/cleantest/internal/logging"
)

func TestContextWithoutLogger(t *testing.T) {
	ctx := context.Background()
	// Logging to a context without a logger is a no-op.
	logging.Info(ctx, "dropped")
	logging.Debugf(ctx, "dropped %d", 1)
}

func TestAttachLoggerPropagation(t *testing.T) {
	var parent, child memorySink
	ctx := logging.AttachLogger(context.Background(), logging.NewSinkLogger(logging.LevelDebug, false, &parent))
	childCtx := logging.AttachLogger(ctx, logging.NewSinkLogger(logging.LevelInfo, false, &child))

	logging.Info(childCtx, "both")
	logging.Debug(childCtx, "parent only")
	logging.Infof(ctx, "parent %s", "again")

	if diff := cmp.Diff(parent.Get(), []string{"both", "parent only", "parent again"}); diff != "" {
		t.Errorf("Parent logs mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(child.Get(), []string{"both"}); diff != "" {
		t.Errorf("Child logs mismatch (-got +want):\n%s", diff)
	}
}

func TestSetLogPrefix(t *testing.T) {
	var sink memorySink
	ctx := logging.AttachLogger(context.Background(), logging.NewSinkLogger(logging.LevelInfo, false, &sink))
	ctx = logging.SetLogPrefix(ctx, "[worker 2] ")
	logging.Info(ctx, "claimed case 7")
	logging.Info(ctx, "bad \xff byte")

	logging.Info(logging.SetLogPrefix(ctx, "[worker 3] "), "replaced")

	want := []string{"[worker 2] claimed case 7", "[worker 2] bad  byte", "[worker 3] replaced"}
	if diff := cmp.Diff(sink.Get(), want); diff != "" {
		t.Errorf("Logs mismatch (-got +want):\n%s", diff)
	}
}
