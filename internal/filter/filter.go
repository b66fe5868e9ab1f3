// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package filter decides which test-cases a run enables.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/testing"
)

// Toggle is the decision a filter makes for a test-case.
type Toggle int

const (
	// Disabled means the case is skipped.
	Disabled Toggle = iota
	// Enabled means the case runs.
	Enabled
)

// Not returns the opposite toggle.
func (t Toggle) Not() Toggle {
	switch t {
	case Enabled:
		return Disabled
	case Disabled:
		return Enabled
	default:
		panic(fmt.Sprintf("invalid toggle %d", int(t)))
	}
}

func (t Toggle) String() string {
	switch t {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return fmt.Sprintf("Toggle(%d)", int(t))
	}
}

// Property selects what part of a Name a pattern is matched against.
type Property int

const (
	// Any matches the path or any tag.
	Any Property = iota
	// Path matches the "/"-joined path.
	Path
	// Tag matches any single tag.
	Tag
)

func (p Property) String() string {
	switch p {
	case Any:
		return "any"
	case Path:
		return "path"
	case Tag:
		return "tag"
	default:
		return fmt.Sprintf("Property(%d)", int(p))
	}
}

// Setting is one filter rule.
type Setting struct {
	Toggle   Toggle
	Property Property
	Pattern  string
}

// String renders s in the syntax accepted by ParseSetting.
func (s Setting) String() string {
	sign := "+"
	if s.Toggle == Disabled {
		sign = "-"
	}
	return sign + s.Property.String() + ":" + s.Pattern
}

// ParseSetting parses a rule written as [+-]?(path:|tag:|any:)?PATTERN.
// The toggle defaults to enabled and the property to any.
func ParseSetting(s string) (Setting, error) {
	st := Setting{Toggle: Enabled, Property: Any}
	rest := s
	switch {
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	case strings.HasPrefix(rest, "-"):
		st.Toggle = Disabled
		rest = rest[1:]
	}
	for _, p := range []Property{Path, Tag, Any} {
		if prefix := p.String() + ":"; strings.HasPrefix(rest, prefix) {
			st.Property = p
			rest = rest[len(prefix):]
			break
		}
	}
	if rest == "" {
		return Setting{}, errors.Errorf("filter %q has an empty pattern", s)
	}
	st.Pattern = rest
	return st, nil
}

type matcher struct {
	toggle   Toggle
	property Property
	re       *regexp.Regexp
}

func (m *matcher) matches(n testing.Name) bool {
	switch m.property {
	case Path:
		return m.re.MatchString(n.Path())
	case Tag:
		return m.matchesTag(n)
	case Any:
		return m.re.MatchString(n.Path()) || m.matchesTag(n)
	default:
		panic(fmt.Sprintf("invalid filter property %d", int(m.property)))
	}
}

func (m *matcher) matchesTag(n testing.Name) bool {
	for _, tag := range n.Tags() {
		if m.re.MatchString(tag) {
			return true
		}
	}
	return false
}

// NameFilter maps test-case names to toggles. It is immutable after New and
// safe for concurrent use.
type NameFilter struct {
	matchers []*matcher
	fallback Toggle
}

// New compiles settings into a NameFilter. Patterns use RE2 syntax and
// match anywhere in the subject unless anchored.
func New(settings []Setting) (*NameFilter, error) {
	f := &NameFilter{fallback: Enabled}
	for _, s := range settings {
		if s.Toggle != Enabled && s.Toggle != Disabled {
			return nil, errors.Errorf("filter %v has invalid toggle %d", s, int(s.Toggle))
		}
		if s.Property != Any && s.Property != Path && s.Property != Tag {
			return nil, errors.Errorf("filter %v has invalid property %d", s, int(s.Property))
		}
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid filter pattern %q", s.Pattern)
		}
		f.matchers = append(f.matchers, &matcher{toggle: s.Toggle, property: s.Property, re: re})
		f.fallback = s.Toggle.Not()
	}
	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(settings ...Setting) *NameFilter {
	f, err := New(settings)
	if err != nil {
		panic(err)
	}
	return f
}

// Match returns the toggle of the first rule matching n. If none matches,
// it returns the opposite of the last rule's toggle, so a list of enabling
// rules disables everything else and vice versa. Without rules every case
// is enabled.
func (f *NameFilter) Match(n testing.Name) Toggle {
	for _, m := range f.matchers {
		if m.matches(n) {
			return m.toggle
		}
	}
	return f.fallback
}

// Enabled is shorthand for Match(n) == Enabled.
func (f *NameFilter) Enabled(n testing.Name) bool {
	return f.Match(n) == Enabled
}
