// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	"strings"
)

// Separator separates the components of a Name's path.
const Separator = "/"

// Name identifies a test-case: a hierarchical path plus an ordered list of
// tags. Names are immutable values; every method returns a new Name.
type Name struct {
	components []string
	tags       []string
}

// NewName returns a Name for path with the given tags. path is split on
// Separator and empty components are dropped, so "a//b/" and "a/b" are the
// same path.
func NewName(path string, tags ...string) Name {
	return Name{
		components: splitPath(path),
		tags:       append([]string(nil), tags...),
	}
}

func splitPath(path string) []string {
	var cs []string
	for _, c := range strings.Split(path, Separator) {
		if c != "" {
			cs = append(cs, c)
		}
	}
	return cs
}

// Join returns n extended by other's path components, with other's tags
// appended to n's.
func (n Name) Join(other Name) Name {
	return Name{
		components: concat(n.components, other.components),
		tags:       concat(n.tags, other.tags),
	}
}

// Child returns n extended by the components of path.
func (n Name) Child(path string) Name {
	return n.Join(NewName(path))
}

// WithTags returns n with tags appended.
func (n Name) WithTags(tags ...string) Name {
	return Name{components: n.components, tags: concat(n.tags, tags)}
}

// Path returns the components joined by Separator.
func (n Name) Path() string {
	return strings.Join(n.components, Separator)
}

// Components returns a copy of the path components.
func (n Name) Components() []string {
	return append([]string(nil), n.components...)
}

// Tags returns a copy of the tags.
func (n Name) Tags() []string {
	return append([]string(nil), n.tags...)
}

// Empty reports whether n has no path components.
func (n Name) Empty() bool {
	return len(n.components) == 0
}

// String returns the path followed by the tags in braces, if any.
func (n Name) String() string {
	if len(n.tags) == 0 {
		return n.Path()
	}
	return n.Path() + " {" + strings.Join(n.tags, ", ") + "}"
}

func concat(a, b []string) []string {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}
