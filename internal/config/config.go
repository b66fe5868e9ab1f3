// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config holds the settings of a cleantest invocation, read from
// an optional YAML file and command line flags.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/reporting"
)

// Coloring selects whether console output is colored.
type Coloring int

const (
	// ColorAuto colors output written to a terminal.
	ColorAuto Coloring = iota
	// ColorAlways always colors output.
	ColorAlways
	// ColorNever never colors output.
	ColorNever
)

var coloringNames = map[string]Coloring{
	"auto":      ColorAuto,
	"automatic": ColorAuto,
	"always":    ColorAlways,
	"enabled":   ColorAlways,
	"never":     ColorNever,
	"disabled":  ColorNever,
}

func (c Coloring) String() string {
	switch c {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return fmt.Sprintf("Coloring(%d)", int(c))
	}
}

// ParseColoring parses a coloring name. Besides the String forms it accepts
// "automatic", "enabled" and "disabled".
func ParseColoring(s string) (Coloring, error) {
	c, ok := coloringNames[s]
	if !ok {
		return 0, errors.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
	return c, nil
}

// Enabled reports whether output written to w should be colored.
func (c Coloring) Enabled(w io.Writer) bool {
	switch c {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return reporting.IsTerminal(w)
	}
}

// Configuration holds every setting of an invocation.
type Configuration struct {
	Coloring  Coloring
	Filters   []filter.Setting
	Buffering reporting.BufferingMode
	// Workers is the number of concurrently running cases; 0 selects one
	// per logical CPU.
	Workers int
	// JUnitPath is where a JUnit report is written. Empty disables it.
	JUnitPath string
	// Depth limits the levels of the listed tree; 0 shows all.
	Depth           int
	JSON            bool
	MetricsTextfile string
	TimingLog       string
	// LogFile receives every framework log with timestamps, regardless of
	// Verbose. Empty disables it.
	LogFile      string
	SummaryTable bool
	ShowPassing  bool
	Verbose      bool
}

// Default returns the configuration used when nothing is specified.
func Default() *Configuration {
	return &Configuration{
		Coloring:    ColorAuto,
		Buffering:   reporting.BufferingOff,
		ShowPassing: true,
	}
}

// fileConfig is the YAML form of a Configuration. Absent keys leave the
// corresponding setting alone.
type fileConfig struct {
	Color           *string  `yaml:"color"`
	Filters         []string `yaml:"filters"`
	Buffering       *string  `yaml:"buffering"`
	Jobs            *int     `yaml:"jobs"`
	JUnit           *string  `yaml:"junit"`
	Depth           *int     `yaml:"depth"`
	MetricsTextfile *string  `yaml:"metrics_textfile"`
	TimingLog       *string  `yaml:"timing_log"`
	LogFile         *string  `yaml:"log_file"`
	SummaryTable    *bool    `yaml:"summary_table"`
	ShowPassing     *bool    `yaml:"show_passing"`
	Verbose         *bool    `yaml:"verbose"`
}

// LoadFile reads the YAML file at path into c. Settings absent from the
// file keep their values. Unknown keys are errors.
func LoadFile(path string, c *Configuration) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open config file")
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}
	if err := fc.apply(c); err != nil {
		return errors.Wrapf(err, "bad config file %s", path)
	}
	return nil
}

func (fc *fileConfig) apply(c *Configuration) error {
	if fc.Color != nil {
		col, err := ParseColoring(*fc.Color)
		if err != nil {
			return err
		}
		c.Coloring = col
	}
	if fc.Filters != nil {
		c.Filters = nil
		for _, s := range fc.Filters {
			st, err := filter.ParseSetting(s)
			if err != nil {
				return err
			}
			c.Filters = append(c.Filters, st)
		}
	}
	if fc.Buffering != nil {
		m, err := reporting.ParseBufferingMode(*fc.Buffering)
		if err != nil {
			return err
		}
		c.Buffering = m
	}
	if fc.Jobs != nil {
		c.Workers = *fc.Jobs
	}
	if fc.JUnit != nil {
		c.JUnitPath = *fc.JUnit
	}
	if fc.Depth != nil {
		c.Depth = *fc.Depth
	}
	if fc.MetricsTextfile != nil {
		c.MetricsTextfile = *fc.MetricsTextfile
	}
	if fc.TimingLog != nil {
		c.TimingLog = *fc.TimingLog
	}
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}
	if fc.SummaryTable != nil {
		c.SummaryTable = *fc.SummaryTable
	}
	if fc.ShowPassing != nil {
		c.ShowPassing = *fc.ShowPassing
	}
	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}
	return nil
}

// Validate checks that c is usable and returns the compiled filter.
func (c *Configuration) Validate() (*filter.NameFilter, error) {
	if c.Workers < 0 {
		return nil, errors.Errorf("number of jobs must not be negative; got %d", c.Workers)
	}
	if c.Depth < 0 {
		return nil, errors.Errorf("depth must not be negative; got %d", c.Depth)
	}
	if _, err := ParseColoring(c.Coloring.String()); err != nil {
		return nil, err
	}
	if _, err := reporting.ParseBufferingMode(c.Buffering.String()); err != nil {
		return nil, err
	}
	return filter.New(c.Filters)
}
