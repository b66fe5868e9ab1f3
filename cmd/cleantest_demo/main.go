// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package main is a test binary exercising the features of cleantest.
//
//	$ cleantest_demo list
//	$ cleantest_demo run -jobs=4 -filter=-tag:slow
package main

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.chromium.org/cleantest/runner"
	"go.chromium.org/cleantest/testing"
)

func init() {
	testing.Suite(testing.NewName("strings"), func() {
		testing.AddCase(testing.NewName("fields"), func(ctx context.Context, o *testing.Observer) error {
			got := strings.Fields(" a  b c ")
			if err := testing.Require(ctx, len(got) == 3, "unexpected field count"); err != nil {
				return err
			}
			testing.Expect(ctx, testing.Equal(got, []string{"a", "b", "c"}))
			return nil
		})

		testing.AddParamCases(testing.NewName("upper"), []string{"abc", "Go", ""},
			func(ctx context.Context, o *testing.Observer, s string) error {
				testing.Expect(ctx, strings.ToUpper(s) == strings.ToUpper(strings.ToLower(s)))
				return nil
			})
	})

	testing.Suite(testing.NewName("concurrency"), func() {
		testing.AddCase(testing.NewName("fanout"), func(ctx context.Context, o *testing.Observer) error {
			var wg sync.WaitGroup
			for i := 0; i < 4; i++ {
				i := i
				wg.Add(1)
				go func() {
					defer wg.Done()
					// The goroutine records into the case's Observer directly.
					testing.ExpectIn(o, i*i >= i, "square of", i)
				}()
			}
			wg.Wait()
			return nil
		})

		testing.AddCase(testing.NewName("sleep", "slow"), func(ctx context.Context, o *testing.Observer) error {
			start := time.Now()
			time.Sleep(50 * time.Millisecond)
			testing.Expect(ctx, time.Since(start) < 40*time.Millisecond, testing.Flaky, "timer resolution")
			return nil
		})
	})
}

func main() {
	os.Exit(runner.Main())
}
