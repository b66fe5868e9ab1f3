// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/reporting"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cleantest.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseColoring(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Coloring
	}{
		{"auto", ColorAuto},
		{"automatic", ColorAuto},
		{"always", ColorAlways},
		{"enabled", ColorAlways},
		{"never", ColorNever},
		{"disabled", ColorNever},
	} {
		got, err := ParseColoring(tc.in)
		if err != nil {
			t.Errorf("ParseColoring(%q) failed: %v", tc.in, err)
		} else if got != tc.want {
			t.Errorf("ParseColoring(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseColoring("rainbow"); err == nil {
		t.Error("ParseColoring(\"rainbow\") succeeded")
	}
}

func TestColoringEnabled(t *testing.T) {
	var buf bytes.Buffer
	if !ColorAlways.Enabled(&buf) {
		t.Error("ColorAlways disabled")
	}
	if ColorNever.Enabled(&buf) {
		t.Error("ColorNever enabled")
	}
	if ColorAuto.Enabled(&buf) {
		t.Error("ColorAuto enabled for a buffer")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
color: never
filters:
  - "-tag:slow"
  - "path:^net/"
buffering: testcase
jobs: 4
junit: out.xml
log_file: run.log
show_passing: false
`)
	c := Default()
	c.TimingLog = "keep.json"
	if err := LoadFile(path, c); err != nil {
		t.Fatal("LoadFile failed: ", err)
	}
	want := &Configuration{
		Coloring: ColorNever,
		Filters: []filter.Setting{
			{Toggle: filter.Disabled, Property: filter.Tag, Pattern: "slow"},
			{Toggle: filter.Enabled, Property: filter.Path, Pattern: "^net/"},
		},
		Buffering:   reporting.BufferingTestcase,
		Workers:     4,
		JUnitPath:   "out.xml",
		TimingLog:   "keep.json",
		LogFile:     "run.log",
		ShowPassing: false,
	}
	if diff := cmp.Diff(c, want); diff != "" {
		t.Errorf("Configuration mismatch (-got +want):\n%s", diff)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	c := Default()
	if err := LoadFile(writeFile(t, ""), c); err != nil {
		t.Fatal("LoadFile failed: ", err)
	}
	if diff := cmp.Diff(c, Default()); diff != "" {
		t.Errorf("Empty file changed the configuration (-got +want):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	for _, content := range []string{
		"colour: never\n",
		"color: rainbow\n",
		"filters: [\"+\"]\n",
		"buffering: always\n",
		"jobs: many\n",
	} {
		if err := LoadFile(writeFile(t, content), Default()); err == nil {
			t.Errorf("LoadFile succeeded for %q", content)
		}
	}
	if err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Default()); err == nil {
		t.Error("LoadFile succeeded for a missing file")
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Filters = []filter.Setting{{Toggle: filter.Enabled, Property: filter.Path, Pattern: "^a"}}
	f, err := c.Validate()
	if err != nil {
		t.Fatal("Validate failed: ", err)
	}
	if f == nil {
		t.Fatal("Validate returned no filter")
	}

	for _, mod := range []func(c *Configuration){
		func(c *Configuration) { c.Workers = -1 },
		func(c *Configuration) { c.Depth = -1 },
		func(c *Configuration) { c.Coloring = Coloring(7) },
		func(c *Configuration) { c.Buffering = reporting.BufferingMode(7) },
		func(c *Configuration) {
			c.Filters = []filter.Setting{{Toggle: filter.Enabled, Pattern: "("}}
		},
	} {
		c := Default()
		mod(c)
		if _, err := c.Validate(); err == nil {
			t.Errorf("Validate succeeded for %+v", c)
		}
	}
}

func parseRunFlags(t *testing.T, c *Configuration, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.SetRunFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%q) failed: %v", args, err)
	}
	return fs
}

func TestRunFlags(t *testing.T) {
	c := Default()
	parseRunFlags(t, c, "-color=always", "-filter=-path:^b", "-filter=tag:x",
		"-buffered", "-jobs=3", "-junit=r.xml", "-log_file=run.log", "-show_passing=false")

	want := &Configuration{
		Coloring: ColorAlways,
		Filters: []filter.Setting{
			{Toggle: filter.Disabled, Property: filter.Path, Pattern: "^b"},
			{Toggle: filter.Enabled, Property: filter.Tag, Pattern: "x"},
		},
		Buffering: reporting.BufferingTestcase,
		Workers:   3,
		JUnitPath: "r.xml",
		LogFile:   "run.log",
	}
	if diff := cmp.Diff(c, want); diff != "" {
		t.Errorf("Configuration mismatch (-got +want):\n%s", diff)
	}

	c = Default()
	parseRunFlags(t, c, "-buffered=off")
	if c.Buffering != reporting.BufferingOff {
		t.Errorf("-buffered=off gave %v", c.Buffering)
	}
}

func TestBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-color=rainbow"},
		{"-filter=+"},
		{"-buffered=sometimes"},
	} {
		fs := flag.NewFlagSet("run", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		Default().SetRunFlags(fs)
		if err := fs.Parse(args); err == nil {
			t.Errorf("Parse(%q) succeeded", args)
		}
	}
}

func TestOverride(t *testing.T) {
	// Flags parsed into one configuration while a file is loaded into
	// another; only given flags win.
	fromFlags := Default()
	fs := parseRunFlags(t, fromFlags, "-jobs=2", "-filter=^x")

	c := Default()
	if err := LoadFile(writeFile(t, "jobs: 8\njunit: file.xml\nfilters: [\"^y\"]\n"), c); err != nil {
		t.Fatal("LoadFile failed: ", err)
	}
	c.Override(fromFlags, fs)

	if c.Workers != 2 {
		t.Errorf("Workers = %d; want 2 from flags", c.Workers)
	}
	if c.JUnitPath != "file.xml" {
		t.Errorf("JUnitPath = %q; want file.xml from the file", c.JUnitPath)
	}
	want := []filter.Setting{{Toggle: filter.Enabled, Property: filter.Any, Pattern: "^x"}}
	if diff := cmp.Diff(c.Filters, want); diff != "" {
		t.Errorf("Filters mismatch (-got +want):\n%s", diff)
	}
}
