// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package stack captures and formats stack traces and call sites.
// Test-case authors do not use it directly; expectations and the errors
// package do.
package stack

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	maxDepth = 8 // maximum number of stack frames to record

	ellipsis = "\t..." // trailing marker line added if stack trace is too long
)

// Stack holds a snapshot of program counters.
type Stack []uintptr

// New captures a stack trace. skip specifies the number of frames to skip from
// a stack trace. skip=0 records stack.New call as the innermost frame.
func New(skip int) Stack {
	pc := make([]uintptr, maxDepth+1)
	pc = pc[:runtime.Callers(skip+2, pc)]
	return Stack(pc)
}

// String formats a stack trace to a human-friendly text.
func (s Stack) String() string {
	var lines []string

	// runtime.CallersFrames expands inlined frames that a plain
	// runtime.FuncForPC walk would miss.
	cf := runtime.CallersFrames(s)
	for {
		f, more := cf.Next()
		lines = append(lines, fmt.Sprintf("\tat %s (%s:%d)", f.Function, filepath.Base(f.File), f.Line))
		if !more {
			break
		} else if len(lines) >= maxDepth {
			lines = append(lines, ellipsis)
			break
		}
	}
	return strings.Join(lines, "\n")
}

// Site identifies a single call site.
type Site struct {
	File string
	Line int
}

// String returns the site as "file:line" with the file's base name.
func (s Site) String() string {
	return fmt.Sprintf("%s:%d", filepath.Base(s.File), s.Line)
}

// Caller returns the call site skip frames above the caller of Caller.
// skip=0 returns the site that called Caller. An unknown site has the file
// "???" and line 0.
func Caller(skip int) Site {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{File: "???"}
	}
	return Site{File: file, Line: line}
}
