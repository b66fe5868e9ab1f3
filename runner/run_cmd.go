// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/google/subcommands"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/config"
	"go.chromium.org/cleantest/internal/execute"
	"go.chromium.org/cleantest/internal/logging"
	"go.chromium.org/cleantest/internal/metrics"
	"go.chromium.org/cleantest/internal/reporting"
	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
	"go.chromium.org/cleantest/internal/timing"
	"go.chromium.org/cleantest/shutil"
)

// runCmd implements subcommands.Command to run test-cases.
type runCmd struct {
	rt         *testing.Runtime
	prog       string
	cfg        *config.Configuration // flag values
	configPath string
	stdout     io.Writer
	stderr     io.Writer
	clock      clock.Clock
}

var _ = subcommands.Command(&runCmd{})

func newRunCmd(rt *testing.Runtime, prog string, stdout, stderr io.Writer) *runCmd {
	return &runCmd{rt: rt, prog: prog, stdout: stdout, stderr: stderr, clock: clock.NewClock()}
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run test-cases" }
func (*runCmd) Usage() string {
	return `Usage: run [flag]...

Description:
    Run registered test-cases enabled by -filter. This is the default when no
    command is given.

    The exit code is the number of test-cases that did not pass, up to 255.

Filter:
    A filter setting is [+-][path:|tag:|any:]REGEXP. '+' enables and '-'
    disables matching test-cases. The first matching setting wins; test-cases
    matching none get the opposite of the last setting. For example:

        $ prog run -filter=-tag:slow -filter=+any:.

Flag:
`
}

func (rc *runCmd) SetFlags(f *flag.FlagSet) {
	rc.cfg = config.Default()
	f.StringVar(&rc.configPath, "config", "", "path of a YAML config file; flags take precedence")
	rc.cfg.SetRunFlags(f)
}

func (rc *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) (status subcommands.ExitStatus) {
	if f.NArg() > 0 {
		return usageError(rc.stderr, errors.Errorf("unexpected arguments %q", f.Args()))
	}
	cfg, flt, err := resolveConfig(rc.configPath, rc.cfg, f)
	if err != nil {
		return usageError(rc.stderr, err)
	}
	ctx, ml := attachLogger(ctx, rc.stderr, cfg.Verbose)
	if cfg.LogFile != "" {
		closeLog, err := openLogFile(ml, cfg.LogFile)
		if err != nil {
			return usageError(rc.stderr, err)
		}
		defer func() {
			if err := closeLog(); err != nil {
				logging.Info(ctx, err)
				if status == subcommands.ExitSuccess {
					status = subcommands.ExitFailure
				}
			}
		}()
	}

	colors := reporting.NewColorTable(cfg.Coloring.Enabled(rc.stdout))
	var rec *metrics.Recorder
	if cfg.MetricsTextfile != "" {
		rec = metrics.NewRecorder()
	}
	tl := timing.NewLog()
	ctx = timing.NewContext(ctx, tl)

	start := rc.clock.Now()
	c := execute.New(execute.Setup{
		Runtime:     rc.rt,
		Output:      rc.stdout,
		Colors:      colors,
		Workers:     cfg.Workers,
		Buffering:   cfg.Buffering,
		ShowPassing: cfg.ShowPassing,
		Filter:      flt,
		Clock:       rc.clock,
		Metrics:     rec,
	})
	logging.Debugf(ctx, "Running with %d workers", c.Workers())
	outcome := c.Run(ctx)

	if cfg.SummaryTable {
		if err := reporting.WriteResultTable(rc.stdout, outcome, colors); err != nil {
			logging.Info(ctx, "Failed to write summary table: ", err)
		}
	}

	code := ExitCode(outcome)
	if err := rc.writeReports(ctx, cfg, outcome, start, rec, tl); err != nil {
		logging.Info(ctx, "Failed to write reports: ", err)
		if code == 0 {
			code = int(subcommands.ExitFailure)
		}
	}

	if failed := failedPaths(outcome); len(failed) > 0 {
		logging.Info(ctx, "To re-run failed test-cases: ", shutil.RerunCommand(rc.prog, failed))
	}
	return subcommands.ExitStatus(code)
}

// writeReports writes the files requested by cfg. It attempts every file
// and returns the first error.
func (rc *runCmd) writeReports(ctx context.Context, cfg *config.Configuration, o *result.Outcome,
	start time.Time, rec *metrics.Recorder, tl *timing.Log) error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if cfg.JUnitPath != "" {
		host, err := os.Hostname()
		if err != nil {
			logging.Debug(ctx, "Failed to get hostname: ", err)
		}
		err = reporting.WriteJUnitFile(cfg.JUnitPath, o, reporting.JUnitInfo{Timestamp: start, Hostname: host})
		record(err)
		if err == nil {
			logging.Debug(ctx, "Wrote JUnit report to ", cfg.JUnitPath)
		}
	}
	if cfg.MetricsTextfile != "" {
		record(rec.WriteTextfile(cfg.MetricsTextfile))
	}
	if cfg.TimingLog != "" {
		record(tl.WritePrettyFile(cfg.TimingLog))
	}
	return firstErr
}

// failedPaths returns the paths of regular test-cases that did not pass.
func failedPaths(o *result.Outcome) []string {
	var paths []string
	for _, r := range o.Regular() {
		if !r.Status.Passed() {
			paths = append(paths, r.Name)
		}
	}
	return paths
}
