// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"

	"go.chromium.org/cleantest/errors"
	"go.chromium.org/cleantest/internal/config"
	"go.chromium.org/cleantest/internal/logging"
	"go.chromium.org/cleantest/internal/reporting"
	"go.chromium.org/cleantest/internal/testing"
)

// listCmd implements subcommands.Command to list registered test-cases.
type listCmd struct {
	rt         *testing.Runtime
	cfg        *config.Configuration // flag values
	configPath string
	stdout     io.Writer
	stderr     io.Writer
}

var _ = subcommands.Command(&listCmd{})

func newListCmd(rt *testing.Runtime, stdout, stderr io.Writer) *listCmd {
	return &listCmd{rt: rt, stdout: stdout, stderr: stderr}
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list test-cases" }
func (*listCmd) Usage() string {
	return `Usage: list [flag]...

Description:
    Print registered test-cases as a tree of their path components, or as
    JSON with -json. Test-cases disabled by -filter are left out of the tree
    and marked in the JSON.

Flag:
`
}

func (lc *listCmd) SetFlags(f *flag.FlagSet) {
	lc.cfg = config.Default()
	f.StringVar(&lc.configPath, "config", "", "path of a YAML config file; flags take precedence")
	lc.cfg.SetListFlags(f)
}

func (lc *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		return usageError(lc.stderr, errors.Errorf("unexpected arguments %q", f.Args()))
	}
	cfg, flt, err := resolveConfig(lc.configPath, lc.cfg, f)
	if err != nil {
		return usageError(lc.stderr, err)
	}
	if cfg.JSON && cfg.Depth != 0 {
		return usageError(lc.stderr, errors.New("-json lists all levels and cannot be combined with -depth"))
	}
	ctx, _ = attachLogger(ctx, lc.stderr, cfg.Verbose)

	cases := lc.rt.Registry().Cases()
	logging.Debugf(ctx, "Listing %d test-cases", len(cases))
	if cfg.JSON {
		err = reporting.WriteCaseList(lc.stdout, cases, flt)
	} else {
		colors := reporting.NewColorTable(cfg.Coloring.Enabled(lc.stdout))
		err = reporting.WriteTree(lc.stdout, cases, flt, colors, cfg.Depth)
	}
	if err != nil {
		logging.Info(ctx, "Failed to write test-cases: ", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
