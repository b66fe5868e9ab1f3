// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runner implements the command line of a test binary. A binary
// registers its test-cases with the testing package and calls Main from
// its main function:
//
//	func main() {
//		os.Exit(runner.Main())
//	}
package runner

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/config"
	"go.chromium.org/cleantest/internal/filter"
	"go.chromium.org/cleantest/internal/logging"
	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
)

// maxExitCode is the largest exit code a process can report.
const maxExitCode = 255

// Main runs the command given by the process arguments on the test-cases
// registered with the testing package and returns the exit code.
func Main() int {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// Run runs the command given by args, e.g. []string{"run", "-jobs=4"}.
// Without a subcommand it runs all test-cases.
//
// The exit code of run is the number of test-cases that did not pass,
// capped at 255. Usage and configuration errors exit with 2.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, testing.DefaultRuntime(), programName(), args, stdout, stderr)
}

func programName() string {
	if len(os.Args) == 0 {
		return "cleantest"
	}
	return filepath.Base(os.Args[0])
}

func run(ctx context.Context, rt *testing.Runtime, prog string, args []string, stdout, stderr io.Writer) int {
	top := flag.NewFlagSet(prog, flag.ContinueOnError)
	top.SetOutput(stderr)
	cdr := subcommands.NewCommander(top, prog)
	cdr.Output = stdout
	cdr.Error = stderr
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")
	cdr.Register(newListCmd(rt, stdout, stderr), "")
	cdr.Register(newRunCmd(rt, prog, stdout, stderr), "")

	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		args = append([]string{"run"}, args...)
	}
	if err := top.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}
	return int(cdr.Execute(ctx))
}

// resolveConfig combines the optional config file at path with the flags
// explicitly set on fs, which were parsed into flagCfg.
func resolveConfig(path string, flagCfg *config.Configuration, fs *flag.FlagSet) (*config.Configuration, *filter.NameFilter, error) {
	cfg := flagCfg
	if path != "" {
		cfg = config.Default()
		if err := config.LoadFile(path, cfg); err != nil {
			return nil, nil, err
		}
		cfg.Override(flagCfg, fs)
	}
	f, err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}
	return cfg, f, nil
}

// usageError prints err and returns the usage exit status.
func usageError(w io.Writer, err error) subcommands.ExitStatus {
	fmt.Fprintf(w, "Error: %v\n", err)
	return subcommands.ExitUsageError
}

// attachLogger sends framework logs to w. More destinations can be added
// to the returned MultiLogger.
func attachLogger(ctx context.Context, w io.Writer, verbose bool) (context.Context, *logging.MultiLogger) {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	ml := logging.NewMultiLogger(logging.NewSinkLogger(level, verbose, logging.NewWriterSink(w)))
	return logging.AttachLogger(ctx, ml), ml
}

// openLogFile creates path and adds a logger writing every log to it to
// ml. The returned function detaches the logger and closes the file.
func openLogFile(ml *logging.MultiLogger, path string) (closeLog func() error, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create log file")
	}
	sink := logging.NewWriterSink(f)
	logger := logging.NewSinkLogger(logging.LevelDebug, true, sink)
	ml.AddLogger(logger)
	return func() error {
		ml.RemoveLogger(logger)
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "failed to close log file %s", path)
		}
		if err := sink.Err(); err != nil {
			return errors.Wrapf(err, "failed to write log file %s", path)
		}
		return nil
	}, nil
}

// ExitCode returns the exit code of a run with outcome o.
func ExitCode(o *result.Outcome) int {
	n := o.NumFailed()
	if n > maxExitCode {
		return maxExitCode
	}
	return n
}
