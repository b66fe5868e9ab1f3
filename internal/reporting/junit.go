// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
)

// junitTestSuites is the top level element of a JUnit report.
type junitTestSuites struct {
	XMLName xml.Name `xml:"testsuites"`
	junitStats
	Time      string         `xml:"time,attr"`
	Timestamp string         `xml:"timestamp,attr"`
	Suite     junitTestSuite `xml:"testsuite"`
}

// junitStats are the counters shared by testsuites and testsuite.
type junitStats struct {
	Tests    int `xml:"tests,attr"`
	Failures int `xml:"failures,attr"`
	Disabled int `xml:"disabled,attr"`
	Errors   int `xml:"errors,attr"`
	Skipped  int `xml:"skipped,attr"`
}

// junitTestSuite holds all cases of a run. A run has a single suite named
// after the root of the case tree.
type junitTestSuite struct {
	Name string `xml:"name,attr"`
	junitStats
	Time       string           `xml:"time,attr"`
	Timestamp  string           `xml:"timestamp,attr"`
	Hostname   string           `xml:"hostname,attr"`
	ID         int              `xml:"id,attr"`
	Properties []junitProperty  `xml:"properties>property,omitempty"`
	Cases      []*junitTestCase `xml:"testcase"`
}

type junitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type junitTestCase struct {
	Name   string `xml:"name,attr"`
	Status string `xml:"status,attr"`
	Time   string `xml:"time,attr"`
	// Observations keep their order; each element is named by its XMLName.
	Observations []junitObservation
	Skipped      *struct{} `xml:"skipped,omitempty"`
}

type junitObservation struct {
	XMLName xml.Name
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// JUnitInfo holds run metadata that does not come from the outcome.
type JUnitInfo struct {
	Timestamp time.Time
	Hostname  string
}

func junitStatus(s result.CaseStatus) string {
	switch s {
	case result.Pass:
		return "passed"
	case result.Fail:
		return "failed"
	case result.Abort:
		return "aborted"
	case result.Skip:
		return "skipped"
	default:
		panic(fmt.Sprintf("invalid case status %d", int(s)))
	}
}

func junitElement(s testing.ObservationStatus) string {
	switch s {
	case testing.Pass:
		return "system-out"
	case testing.Fail, testing.FailFlaky:
		return "failure"
	case testing.FailAsserted:
		return "error"
	default:
		panic(fmt.Sprintf("invalid observation status %d", int(s)))
	}
}

func junitMessage(o testing.Observation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d\n%s\n", o.Where.File, o.Where.Line, o.Expression)
	if o.Description != "" {
		sb.WriteString(o.Description + "\n")
	}
	return sb.String()
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// WriteJUnit writes o as a JUnit XML document to w.
func WriteJUnit(w io.Writer, o *result.Outcome, info JUnitInfo) error {
	var stats junitStats
	stats.Tests = len(o.Results)
	for _, r := range o.Results {
		switch r.Status {
		case result.Fail:
			stats.Failures++
		case result.Abort:
			stats.Errors++
		case result.Skip:
			stats.Skipped++
		}
	}

	ts := info.Timestamp.Format("2006-01-02T15:04:05")
	suite := junitTestSuite{
		Name:       "/",
		junitStats: stats,
		Time:       seconds(o.WallTime),
		Timestamp:  ts,
		Hostname:   info.Hostname,
	}
	if o.RunID != "" {
		suite.Properties = []junitProperty{{Name: "run_id", Value: o.RunID}}
	}
	for _, r := range o.Results {
		tc := &junitTestCase{
			Name:   r.Name,
			Status: junitStatus(r.Status),
			Time:   seconds(r.WallTime),
		}
		for _, ob := range r.Observations {
			tc.Observations = append(tc.Observations, junitObservation{
				XMLName: xml.Name{Local: junitElement(ob.Status)},
				Message: junitMessage(ob),
				Type:    "expect",
			})
		}
		if r.Status == result.Skip {
			tc.Skipped = &struct{}{}
		}
		suite.Cases = append(suite.Cases, tc)
	}

	doc := junitTestSuites{
		junitStats: stats,
		Time:       seconds(o.WallTime),
		Timestamp:  ts,
		Suite:      suite,
	}
	b, err := xml.MarshalIndent(&doc, "", " ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JUnit report")
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteJUnitFile writes o as a JUnit XML document to a file at path,
// replacing any existing file.
func WriteJUnitFile(path string, o *result.Outcome, info JUnitInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create JUnit report")
	}
	if err := WriteJUnit(f, o, info); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write JUnit report %s", path)
	}
	return f.Close()
}
