// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package execute

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
)

// claim takes the next unclaimed index below n from cursor. It returns
// false once every index has been claimed.
func claim(cursor *atomic.Int64, n int) (int, bool) {
	for {
		cur := cursor.Load()
		if cur >= int64(n) {
			return 0, false
		}
		if cursor.CompareAndSwap(cur, cur+1) {
			return int(cur), true
		}
	}
}

// worker pulls cases off a shared list until none is left.
type worker struct {
	cases  []*testing.Case
	cursor *atomic.Int64
	filter *filter.NameFilter
	eval   *CaseEvaluator
}

func (w *worker) run(ctx context.Context) []result.CaseResult {
	var results []result.CaseResult
	for {
		i, ok := claim(w.cursor, len(w.cases))
		if !ok {
			return results
		}
		c := w.cases[i]
		switch t := w.filter.Match(c.Name); t {
		case filter.Disabled:
			results = append(results, result.NewCaseResult(c.Name.Path(), result.Skip, 0, nil))
		case filter.Enabled:
			results = append(results, w.eval.Evaluate(ctx, c))
		default:
			panic(fmt.Sprintf("invalid toggle %d for %s", int(t), c.Name.Path()))
		}
	}
}
