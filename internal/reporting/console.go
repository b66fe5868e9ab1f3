// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"fmt"
	"io"
	"strings"

	"go.chromium.org/cleantest/internal/result"
)

// Each function below writes its block with a single Write, so blocks stay
// intact on a SyncWriter shared with running cases.

// WriteRunning announces a run of n cases.
func WriteRunning(w io.Writer, colors *ColorTable, n int) error {
	_, err := fmt.Fprintf(w, "%s Running %d test-cases\n", colors.Paint(Good, BadgeTitle), n)
	return err
}

// WriteFallbackWarning warns that observations were not attributed to any
// case.
func WriteFallbackWarning(w io.Writer, colors *ColorTable) error {
	_, err := io.WriteString(w, colors.Paint(Bad, BadgeHeadline+
		" Warning: Observed test-expectations at unknown Observer, likely caused by lacking passed observer.")+"\n")
	return err
}

// WriteLateRegistration warns that the named cases were registered during
// the run and did not run.
func WriteLateRegistration(w io.Writer, colors *ColorTable, names []string) error {
	if len(names) == 0 {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Warning: The following %d test-cases have been registered late:\n",
		colors.Paint(Bad, BadgeHeadline), len(names))
	for _, n := range names {
		fmt.Fprintf(&sb, "%s   - %s\n", BadgeEmpty, n)
	}
	fmt.Fprintf(&sb, "%s Registering test-cases dynamically impedes parallel execution.\n",
		colors.Paint(Bad, BadgeHeadline))
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteSummary writes the closing summary of o.
func WriteSummary(w io.Writer, colors *ColorTable, o *result.Outcome) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Ran %d test-cases (%s total)\n",
		colors.Paint(Good, BadgeTitle), len(o.Regular()), FormatDuration(o.WallTime))

	for _, r := range o.Results {
		if !r.Status.Passed() {
			fmt.Fprintf(&sb, "%s %s\n", colors.Paint(Bad, BadgeFail), r.Name)
		}
	}

	if passed := o.NumPassed(); passed > 0 {
		other := ""
		if o.NumFailed() > 0 {
			other = "other "
		}
		fmt.Fprintf(&sb, "%s All %s%d test-cases\n", colors.Paint(Good, BadgePass), other, passed)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
