// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil builds shell command lines.
package shutil

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// \w is [0-9A-Za-z_]. A leading '=' triggers expansion in zsh.
	leadingSafeChars  = `-\w@%+:,./`
	trailingSafeChars = leadingSafeChars + "="
)

// safeRE matches arguments that need no quoting.
var safeRE = regexp.MustCompile(fmt.Sprintf("^[%s][%s]*$", leadingSafeChars, trailingSafeChars))

// Escape quotes s for a POSIX shell unless it is already safe as is.
func Escape(s string) string {
	if safeRE.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// EscapeSlice escapes each of args and joins them with spaces, so a shell
// splits the result back into args.
func EscapeSlice(args []string) string {
	escaped := make([]string, len(args))
	for i, arg := range args {
		escaped[i] = Escape(arg)
	}
	return strings.Join(escaped, " ")
}

// PathFilter returns a filter setting enabling exactly the test-cases whose
// paths are in paths.
func PathFilter(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return "+path:^(?:" + strings.Join(quoted, "|") + ")$"
}

// RerunCommand returns a command line running program on the test-cases
// whose paths are in paths and nothing else.
func RerunCommand(program string, paths []string) string {
	return EscapeSlice([]string{program, "run", "-filter=" + PathFilter(paths)})
}
