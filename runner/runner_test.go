// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	gotesting "testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"

	"go.chromium.org/cleantest/internal/result"
	"go.chromium.org/cleantest/internal/testing"
	"go.chromium.org/cleantest/testutil"
)

func noop(context.Context, *testing.Observer) error { return nil }

// newRuntime returns a runtime with a passing case "a/x" tagged "fast",
// a passing case "a/y" and a failing case "b".
func newRuntime() *testing.Runtime {
	rt := testing.NewRuntime()
	rt.AddCase(testing.NewName("a/x", "fast"), func(ctx context.Context, o *testing.Observer) error {
		return testing.Expect(ctx, rt, 0, true)
	})
	rt.AddCase(testing.NewName("a/y"), noop)
	rt.AddCase(testing.NewName("b"), func(ctx context.Context, o *testing.Observer) error {
		return testing.Expect(ctx, rt, 0, false, "b is broken")
	})
	return rt
}

// invoke runs args against rt and returns the exit code and output.
func invoke(rt *testing.Runtime, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), rt, "cleantest", args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestList(t *gotesting.T) {
	code, stdout, stderr := invoke(newRuntime(), "list")
	if code != 0 {
		t.Fatalf("list exited with %d; stderr:\n%s", code, stderr)
	}
	want := "  ├ a\n" +
		"  │   ├ x  {fast}\n" +
		"  │   └ y\n" +
		"  └ b\n"
	if stdout != want {
		t.Errorf("list printed %q; want %q", stdout, want)
	}

	code, stdout, _ = invoke(newRuntime(), "list", "-depth=1", "-filter=-path:^b")
	if code != 0 {
		t.Fatalf("list -depth=1 exited with %d", code)
	}
	if want := "  └ a\n"; stdout != want {
		t.Errorf("list -depth=1 printed %q; want %q", stdout, want)
	}
}

func TestListJSON(t *gotesting.T) {
	code, stdout, _ := invoke(newRuntime(), "list", "-json", "-filter=tag:fast")
	if code != 0 {
		t.Fatalf("list -json exited with %d", code)
	}
	type entry struct {
		Name    string   `json:"name"`
		Tags    []string `json:"tags"`
		Enabled bool     `json:"enabled"`
	}
	var got []entry
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("list -json printed invalid JSON: %v\n%s", err, stdout)
	}
	want := []entry{
		{"a/x", []string{"fast"}, true},
		{"a/y", []string{}, false},
		{"b", []string{}, false},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("list -json mismatch (-got +want):\n%s", diff)
	}
}

func TestListDoesNotRun(t *gotesting.T) {
	rt := newRuntime()
	invoke(rt, "list")
	if got := rt.Registry().Len(); got != 3 {
		t.Errorf("Registry holds %d cases after list; want 3", got)
	}
}

func TestRun(t *gotesting.T) {
	code, stdout, stderr := invoke(newRuntime(), "run", "-jobs=2")
	if code != 1 {
		t.Errorf("run exited with %d; want 1", code)
	}
	for _, s := range []string{
		"[ ===== ] Running 3 test-cases\n",
		"[ FAIL  ] b (",
		"b is broken\n",
		"[ FAIL  ] b\n[ PASS  ] All other 2 test-cases\n",
	} {
		if !strings.Contains(stdout, s) {
			t.Errorf("Output lacks %q:\n%s", s, stdout)
		}
	}
	if want := `To re-run failed test-cases: cleantest run '-filter=+path:^(?:b)$'`; !strings.Contains(stderr, want) {
		t.Errorf("stderr lacks the re-run hint %q:\n%s", want, stderr)
	}
}

func TestRunIsDefault(t *gotesting.T) {
	for _, args := range [][]string{nil, {"-filter=-path:^b$"}} {
		code, stdout, _ := invoke(newRuntime(), args...)
		if !strings.Contains(stdout, "Running 3 test-cases") {
			t.Errorf("%q did not run test-cases:\n%s", args, stdout)
		}
		wantCode := 1
		if len(args) > 0 {
			wantCode = 0
		}
		if code != wantCode {
			t.Errorf("%q exited with %d; want %d", args, code, wantCode)
		}
	}
}

func TestRunPassing(t *gotesting.T) {
	code, stdout, _ := invoke(newRuntime(), "run", "-filter=+path:^a/")
	if code != 0 {
		t.Errorf("run exited with %d; want 0\n%s", code, stdout)
	}
	if !strings.Contains(stdout, "[ PASS  ] All 3 test-cases\n") {
		t.Errorf("Output lacks the passing summary:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Passing expectation in ") {
		t.Errorf("Passing expectations are not shown by default:\n%s", stdout)
	}

	_, stdout, _ = invoke(newRuntime(), "run", "-filter=+path:^a/", "-show_passing=false")
	if strings.Contains(stdout, "Passing expectation in ") {
		t.Errorf("Passing expectations are shown with -show_passing=false:\n%s", stdout)
	}
}

func TestRunExitCodeCapped(t *gotesting.T) {
	rt := testing.NewRuntime()
	for i := 0; i < 300; i++ {
		rt.AddCase(testing.NewName(fmt.Sprintf("f%d", i)), func(ctx context.Context, o *testing.Observer) error {
			return testing.Expect(ctx, rt, 0, false)
		})
	}
	if code, _, _ := invoke(rt, "run", "-jobs=8"); code != 255 {
		t.Errorf("run exited with %d; want 255", code)
	}
}

func TestExitCode(t *gotesting.T) {
	o := &result.Outcome{Results: []result.CaseResult{
		result.NewCaseResult("a", result.Abort, 0, nil),
		result.NewCaseResult("b", result.Skip, 0, nil),
		result.NewFallbackResult([]testing.Observation{{Status: testing.Fail}}),
	}}
	if got := ExitCode(o); got != 1 {
		t.Errorf("ExitCode() = %d; want 1", got)
	}
}

func TestUsageErrors(t *gotesting.T) {
	for _, args := range [][]string{
		{"run", "-filter=+"},
		{"run", "-filter=("},
		{"run", "-jobs=-1"},
		{"run", "-nosuchflag"},
		{"run", "extra"},
		{"list", "-json", "-depth=2"},
		{"list", "-config=/nonexistent/cleantest.yaml"},
		{"frobnicate"},
	} {
		rt := newRuntime()
		if code, _, _ := invoke(rt, args...); code != int(subcommands.ExitUsageError) {
			t.Errorf("%q exited with %d; want %d", args, code, subcommands.ExitUsageError)
		}
		if got := rt.Registry().Len(); got != 3 {
			t.Errorf("%q ran test-cases", args)
		}
	}
}

func TestHelp(t *gotesting.T) {
	code, stdout, _ := invoke(newRuntime(), "help", "run")
	if code != 0 {
		t.Errorf("help exited with %d", code)
	}
	if !strings.Contains(stdout, "Usage: run") {
		t.Errorf("help run printed:\n%s", stdout)
	}
}

func TestRunConfigFile(t *gotesting.T) {
	dir := testutil.OutDir(t, map[string]string{
		"cleantest.yaml": "filters: [\"-path:^b$\"]\njunit: file.xml\n",
	})
	junit := filepath.Join(dir, "flag.xml")

	code, _, stderr := invoke(newRuntime(), "run",
		"-config="+filepath.Join(dir, "cleantest.yaml"), "-junit="+junit)
	if code != 0 {
		t.Errorf("run exited with %d; want 0 as the config file disables b\n%s", code, stderr)
	}

	files, err := testutil.ReadFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := files["file.xml"]; ok {
		t.Error("JUnit report written to the path from the file; the flag should win")
	}
	if !strings.Contains(files["flag.xml"], `<testcase name="b" status="skipped"`) {
		t.Errorf("Unexpected JUnit report:\n%s", files["flag.xml"])
	}
}

func TestRunReports(t *gotesting.T) {
	dir := t.TempDir()
	code, stdout, stderr := invoke(newRuntime(), "run",
		"-junit="+filepath.Join(dir, "junit.xml"),
		"-metrics_textfile="+filepath.Join(dir, "cleantest.prom"),
		"-timing_log="+filepath.Join(dir, "timing.json"),
		"-summary_table")
	if code != 1 {
		t.Errorf("run exited with %d; want 1\n%s", code, stderr)
	}

	files, err := testutil.ReadFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{
		"junit.xml":      `<testsuites tests="3" failures="1"`,
		"cleantest.prom": `cleantest_cases_total{status="fail"} 1`,
		"timing.json":    `"dispatching"`,
	} {
		if !strings.Contains(files[name], want) {
			t.Errorf("%s lacks %q:\n%s", name, want, files[name])
		}
	}
	if !strings.Contains(stdout, "Run ") || !strings.Contains(strings.ToUpper(stdout), "OBSERVATIONS") {
		t.Errorf("Output lacks the summary table:\n%s", stdout)
	}
}

func TestRunReportFailure(t *gotesting.T) {
	code, _, stderr := invoke(newRuntime(), "run", "-filter=-path:^b$",
		"-junit="+filepath.Join(t.TempDir(), "missing", "junit.xml"))
	if code != int(subcommands.ExitFailure) {
		t.Errorf("run exited with %d; want %d", code, subcommands.ExitFailure)
	}
	if !strings.Contains(stderr, "Failed to write reports") {
		t.Errorf("stderr lacks the report failure:\n%s", stderr)
	}
}

func TestRunLogFile(t *gotesting.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	code, _, stderr := invoke(newRuntime(), "run", "-jobs=1", "-log_file="+path)
	if code != 1 {
		t.Errorf("run exited with %d; want 1\n%s", code, stderr)
	}

	files, err := testutil.ReadFiles(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	log := files["run.log"]
	// Debug logs reach the file even without -verbose.
	for _, want := range []string{"Running with 1 workers", "Z Run ", "To re-run failed test-cases: "} {
		if !strings.Contains(log, want) {
			t.Errorf("Log file lacks %q:\n%s", want, log)
		}
	}
	if strings.Contains(stderr, "Running with") {
		t.Errorf("Debug log reached stderr without -verbose:\n%s", stderr)
	}
	if !strings.Contains(stderr, "To re-run failed test-cases: ") {
		t.Errorf("stderr lacks the re-run hint:\n%s", stderr)
	}
}

func TestRunLogFileUnwritable(t *gotesting.T) {
	code, _, stderr := invoke(newRuntime(), "run",
		"-log_file="+filepath.Join(t.TempDir(), "missing", "run.log"))
	if code != int(subcommands.ExitUsageError) {
		t.Errorf("run exited with %d; want %d", code, subcommands.ExitUsageError)
	}
	if !strings.Contains(stderr, "failed to create log file") {
		t.Errorf("stderr lacks the log file error:\n%s", stderr)
	}
}
