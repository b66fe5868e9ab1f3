// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package testing

import (
	gotesting "testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewName(t *gotesting.T) {
	for _, tc := range []struct {
		path     string
		wantPath string
		wantComp []string
	}{
		{"", "", nil},
		{"a", "a", []string{"a"}},
		{"a/b/c", "a/b/c", []string{"a", "b", "c"}},
		{"/a//b/", "a/b", []string{"a", "b"}},
	} {
		n := NewName(tc.path)
		if got := n.Path(); got != tc.wantPath {
			t.Errorf("NewName(%q).Path() = %q; want %q", tc.path, got, tc.wantPath)
		}
		if diff := cmp.Diff(n.Components(), tc.wantComp); diff != "" {
			t.Errorf("NewName(%q).Components() mismatch (-got +want):\n%s", tc.path, diff)
		}
	}
}

func TestNameJoin(t *gotesting.T) {
	suite := NewName("math", "fast")
	n := suite.Join(NewName("add/ints", "pure"))
	if got, want := n.Path(), "math/add/ints"; got != want {
		t.Errorf("Path() = %q; want %q", got, want)
	}
	if diff := cmp.Diff(n.Tags(), []string{"fast", "pure"}); diff != "" {
		t.Errorf("Tags() mismatch (-got +want):\n%s", diff)
	}
	if got, want := n.String(), "math/add/ints {fast, pure}"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}

	// The receiver is unchanged.
	if got := suite.Path(); got != "math" {
		t.Errorf("Join modified receiver path to %q", got)
	}
	if diff := cmp.Diff(suite.Tags(), []string{"fast"}); diff != "" {
		t.Errorf("Join modified receiver tags (-got +want):\n%s", diff)
	}
}

func TestNameJoinEmpty(t *gotesting.T) {
	if got := NewName("").Join(NewName("a")).Path(); got != "a" {
		t.Errorf("empty.Join(a) = %q; want a", got)
	}
	if got := NewName("a").Child("").Path(); got != "a" {
		t.Errorf("a.Child(\"\") = %q; want a", got)
	}
	if !NewName("").Empty() {
		t.Error("NewName(\"\").Empty() = false; want true")
	}
}

func TestNameWithTagsDoesNotAlias(t *gotesting.T) {
	base := NewName("x", "t1")
	a := base.WithTags("a")
	b := base.WithTags("b")
	if diff := cmp.Diff(a.Tags(), []string{"t1", "a"}); diff != "" {
		t.Errorf("a.Tags() mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(b.Tags(), []string{"t1", "b"}); diff != "" {
		t.Errorf("b.Tags() mismatch (-got +want):\n%s", diff)
	}
	if got := base.String(); got != "x {t1}" {
		t.Errorf("base.String() = %q; want \"x {t1}\"", got)
	}
}
