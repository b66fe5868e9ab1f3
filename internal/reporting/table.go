// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/exp/slices"

	"go.chromium.org/cleantest/internal/result"
)

// WriteResultTable renders every result of o as a table sorted by name,
// with totals in the footer.
func WriteResultTable(w io.Writer, o *result.Outcome, colors *ColorTable) error {
	var buf strings.Builder
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle("Run " + o.RunID)
	t.AppendHeader(table.Row{"Name", "Type", "Status", "Duration", "Observations", "Failures"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Observations", Align: text.AlignRight},
		{Name: "Failures", Align: text.AlignRight},
	})

	rs := append([]result.CaseResult(nil), o.Results...)
	slices.SortStableFunc(rs, func(a, b result.CaseResult) int {
		return strings.Compare(a.Name, b.Name)
	})

	var totalObs, totalFailures int
	for _, r := range rs {
		failures := 0
		for _, ob := range r.Observations {
			if ob.Status.Failed() {
				failures++
			}
		}
		totalObs += len(r.Observations)
		totalFailures += failures

		status := r.Status.String()
		if !r.Status.Passed() {
			status = colors.Paint(Bad, status)
		}
		t.AppendRow(table.Row{r.Name, r.Type.String(), status, FormatDuration(r.WallTime), len(r.Observations), failures})
	}

	t.AppendFooter(table.Row{"Total", "", fmt.Sprintf("%d failed", o.NumFailed()), FormatDuration(o.WallTime), totalObs, totalFailures})
	if colors.Enabled() {
		t.SetStyle(table.StyleColoredBright)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.Render()
	_, err := io.WriteString(w, buf.String())
	return err
}
