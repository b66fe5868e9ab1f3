// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorTableDisabled(t *testing.T) {
	ct := NewColorTable(false)
	if ct.Enabled() {
		t.Error("Enabled() = true; want false")
	}
	for _, c := range []Color{Off, Good, Bad} {
		if got := ct.Paint(c, BadgePass); got != BadgePass {
			t.Errorf("Paint(%d) = %q; want unchanged text", c, got)
		}
	}
}

func TestColorTableEnabled(t *testing.T) {
	ct := NewColorTable(true)
	good := ct.Paint(Good, "ok")
	bad := ct.Paint(Bad, "ko")
	for _, s := range []string{good, bad} {
		if !strings.HasPrefix(s, "\x1b[") {
			t.Errorf("Painted text %q does not start with an escape sequence", s)
		}
	}
	if !strings.Contains(good, "ok") || !strings.Contains(bad, "ko") {
		t.Errorf("Painted text lost its content: %q, %q", good, bad)
	}
	if good == ct.Paint(Good, "ko") {
		t.Error("Different text painted identically")
	}
	if got := ct.Paint(Off, "plain"); got != "plain" {
		t.Errorf("Paint(Off) = %q; want plain", got)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(bytes.Buffer) = true; want false")
	}
}
