// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"flag"
	"strings"

	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/reporting"
)

// coloringFlag implements flag.Value for a Coloring.
type coloringFlag struct{ dst *Coloring }

func (f coloringFlag) String() string {
	if f.dst == nil {
		return ""
	}
	return f.dst.String()
}

func (f coloringFlag) Set(s string) error {
	c, err := ParseColoring(s)
	if err != nil {
		return err
	}
	*f.dst = c
	return nil
}

// bufferingFlag implements flag.Value for a BufferingMode. It may be given
// without a value to select testcase buffering.
type bufferingFlag struct{ dst *reporting.BufferingMode }

func (f bufferingFlag) String() string {
	if f.dst == nil {
		return ""
	}
	return f.dst.String()
}

func (f bufferingFlag) Set(s string) error {
	switch s {
	case "true":
		*f.dst = reporting.BufferingTestcase
		return nil
	case "false":
		*f.dst = reporting.BufferingOff
		return nil
	}
	m, err := reporting.ParseBufferingMode(s)
	if err != nil {
		return err
	}
	*f.dst = m
	return nil
}

func (f bufferingFlag) IsBoolFlag() bool { return true }

// filterFlag implements flag.Value by appending a filter setting each time
// the flag is given.
type filterFlag struct{ dst *[]filter.Setting }

func (f filterFlag) String() string {
	if f.dst == nil {
		return ""
	}
	var strs []string
	for _, s := range *f.dst {
		strs = append(strs, s.String())
	}
	return strings.Join(strs, " ")
}

func (f filterFlag) Set(s string) error {
	st, err := filter.ParseSetting(s)
	if err != nil {
		return err
	}
	*f.dst = append(*f.dst, st)
	return nil
}

// SetCommonFlags registers flags shared by all subcommands on fs, bound to
// c.
func (c *Configuration) SetCommonFlags(fs *flag.FlagSet) {
	fs.Var(coloringFlag{&c.Coloring}, "color", "console coloring: auto, always or never")
	fs.Var(filterFlag{&c.Filters}, "filter",
		"filter setting [+-][path:|tag:|any:]REGEXP; may be repeated, first match wins")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "log framework diagnostics to stderr")
}

// SetListFlags registers the flags of the list subcommand on fs, bound to
// c.
func (c *Configuration) SetListFlags(fs *flag.FlagSet) {
	c.SetCommonFlags(fs)
	fs.IntVar(&c.Depth, "depth", c.Depth, "number of tree levels shown; 0 shows all")
	fs.BoolVar(&c.JSON, "json", c.JSON, "list test-cases as JSON instead of a tree")
}

// SetRunFlags registers the flags of the run subcommand on fs, bound to c.
func (c *Configuration) SetRunFlags(fs *flag.FlagSet) {
	c.SetCommonFlags(fs)
	fs.Var(bufferingFlag{&c.Buffering}, "buffered", "hold back each test-case's output until it finishes")
	fs.IntVar(&c.Workers, "jobs", c.Workers, "number of test-cases run concurrently; 0 uses one per CPU")
	fs.StringVar(&c.JUnitPath, "junit", c.JUnitPath, "path of a JUnit XML report to write")
	fs.StringVar(&c.MetricsTextfile, "metrics_textfile", c.MetricsTextfile,
		"path of a Prometheus text file to write run metrics to")
	fs.StringVar(&c.TimingLog, "timing_log", c.TimingLog, "path of a JSON timing log to write")
	fs.StringVar(&c.LogFile, "log_file", c.LogFile, "path of a file receiving all framework logs")
	fs.BoolVar(&c.SummaryTable, "summary_table", c.SummaryTable, "print a table of all results after the run")
	fs.BoolVar(&c.ShowPassing, "show_passing", c.ShowPassing, "show passing expectations")
}

var overrides = map[string]func(dst, src *Configuration){
	"color":            func(d, s *Configuration) { d.Coloring = s.Coloring },
	"filter":           func(d, s *Configuration) { d.Filters = append([]filter.Setting(nil), s.Filters...) },
	"verbose":          func(d, s *Configuration) { d.Verbose = s.Verbose },
	"depth":            func(d, s *Configuration) { d.Depth = s.Depth },
	"json":             func(d, s *Configuration) { d.JSON = s.JSON },
	"buffered":         func(d, s *Configuration) { d.Buffering = s.Buffering },
	"jobs":             func(d, s *Configuration) { d.Workers = s.Workers },
	"junit":            func(d, s *Configuration) { d.JUnitPath = s.JUnitPath },
	"metrics_textfile": func(d, s *Configuration) { d.MetricsTextfile = s.MetricsTextfile },
	"timing_log":       func(d, s *Configuration) { d.TimingLog = s.TimingLog },
	"log_file":         func(d, s *Configuration) { d.LogFile = s.LogFile },
	"summary_table":    func(d, s *Configuration) { d.SummaryTable = s.SummaryTable },
	"show_passing":     func(d, s *Configuration) { d.ShowPassing = s.ShowPassing },
}

// Override copies into c the settings of src whose flags were explicitly
// given on fs. Flags given on the command line thus take precedence over a
// config file loaded into c.
func (c *Configuration) Override(src *Configuration, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		if o, ok := overrides[f.Name]; ok {
			o(c, src)
		}
	})
}
