// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteResultTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResultTable(&buf, junitOutcome(), NewColorTable(false)); err != nil {
		t.Fatal("WriteResultTable failed: ", err)
	}
	out := buf.String()

	for _, s := range []string{"Run run-1", "a/pass", "a/fail", "b/abort", "regular", "abort", "skip"} {
		if !strings.Contains(out, s) {
			t.Errorf("Table does not contain %q:\n%s", s, out)
		}
	}
	// Headers and footers may be reformatted by the table style.
	if upper := strings.ToUpper(out); !strings.Contains(upper, "2 FAILED") {
		t.Errorf("Table footer does not count 2 failures:\n%s", out)
	}

	// Rows are sorted by name.
	if strings.Index(out, "a/fail") > strings.Index(out, "a/pass") ||
		strings.Index(out, "a/pass") > strings.Index(out, "b/abort") {
		t.Errorf("Rows are not sorted by name:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Uncolored table contains escape sequences:\n%s", out)
	}
}
