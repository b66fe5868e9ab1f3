// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"fmt"

	"go.chromium.org/cleantest/internal/result"
)

// Badges prefix console lines.
const (
	BadgeEmpty    = "[       ]"
	BadgeTitle    = "[ ===== ]"
	BadgeHeadline = "[ ----- ]"
	BadgeRun      = "[ RUN   ]"
	BadgePass     = "[ PASS  ]"
	BadgeFail     = "[ FAIL  ]"
	BadgeAbort    = "[ ABORT ]"
	BadgeSkip     = "[ SKIP  ]"
)

// StatusBadge returns the badge and its color for a case status.
func StatusBadge(s result.CaseStatus) (string, Color) {
	switch s {
	case result.Pass:
		return BadgePass, Good
	case result.Fail:
		return BadgeFail, Bad
	case result.Abort:
		return BadgeAbort, Bad
	case result.Skip:
		return BadgeSkip, Off
	default:
		panic(fmt.Sprintf("invalid case status %d", int(s)))
	}
}
