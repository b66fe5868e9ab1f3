// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package reporting renders runs for people and machines: the console
// report, JUnit XML, the case tree and the summary table.
package reporting

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color is a semantic console color.
type Color int

const (
	// Off leaves text unstyled.
	Off Color = iota
	// Good marks success.
	Good
	// Bad marks failure.
	Bad
)

// ColorTable paints text with semantic colors, or leaves it alone when
// coloring is disabled.
type ColorTable struct {
	enabled bool
	styles  map[Color]lipgloss.Style
}

// NewColorTable returns a table emitting ANSI colors if enabled is true.
func NewColorTable(enabled bool) *ColorTable {
	t := &ColorTable{enabled: enabled}
	if enabled {
		// The renderer writes nowhere; it only needs a fixed profile so the
		// escape sequences do not depend on the environment.
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.ANSI)
		t.styles = map[Color]lipgloss.Style{
			Good: r.NewStyle().Foreground(lipgloss.Color("2")),
			Bad:  r.NewStyle().Foreground(lipgloss.Color("1")),
		}
	}
	return t
}

// Enabled reports whether the table emits colors.
func (t *ColorTable) Enabled() bool {
	return t.enabled
}

// Paint returns s in color c.
func (t *ColorTable) Paint(c Color, s string) string {
	if !t.enabled || c == Off {
		return s
	}
	style, ok := t.styles[c]
	if !ok {
		return s
	}
	return style.Render(s)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
