// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j0nem/multicast-performance/analysisfmt"
	"github.com/j0nem/multicast-performance/runset"
	"github.com/j0nem/multicast-performance/store"
)

const pidstatLog = `Linux 6.1.0 (server) 	01/02/26 	_x86_64_	(4 CPU)

10:00:01      UID      TGID       TID    %usr %system  %guest   %wait    %CPU   CPU  Command
10:00:02     1000      1234         -   40.00    5.00    0.00    0.00   45.00     3  server

10:00:01      UID      TGID       TID  minflt/s  majflt/s     VSZ     RSS   %MEM  Command
10:00:02     1000      1234         -      0.00      0.00  100000   20480   1.00  server
`

func writeRun(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, runset.ServerDir), 0777); err != nil {
		t.Fatal(err)
	}
	for name, data := range map[string]string{
		runset.ConfigFile:                                  "clients=4\n",
		filepath.Join(runset.ServerDir, runset.PidstatLog): pidstatLog,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0666); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunstat(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "multicast_4_iter1_20260102")
	writeRun(t, dir)
	dsn := filepath.Join(base, "runs.db")

	var got, gotErr bytes.Buffer
	if err := runstat(&got, &gotErr, []string{"-db", dsn, dir}); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, gotErr.String())
	}
	for _, want := range []string{
		"SERVER ANALYSIS: multicast_4_iter1_20260102",
		"clients=4",
		"Average CPU Usage: 45.00%",
		"Average Memory: 20.00 MiB",
	} {
		if !strings.Contains(got.String(), want) {
			t.Errorf("output missing %q:\n%s", want, got.String())
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, runset.AnalysisFile))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, got.Bytes()) {
		t.Errorf("%s differs from printed report", runset.AnalysisFile)
	}
	run, err := analysisfmt.Parse(data, dir)
	if err != nil {
		t.Fatal(err)
	}
	if run.Scalars["peak_cpu"] != 45 {
		t.Errorf("report peak_cpu = %v, want 45", run.Scalars["peak_cpu"])
	}

	db, err := store.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := db.Runs(context.Background(), "multicast_4")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Scalars["avg_cpu"] != 45 {
		t.Errorf("stored runs = %+v, want one run with avg_cpu 45", runs)
	}
}

func TestRunstatOutput(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "unicast_4_iter1_x")
	writeRun(t, dir)
	out := filepath.Join(base, "report.txt")

	var got, gotErr bytes.Buffer
	if err := runstat(&got, &gotErr, []string{"-o", out, dir}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
	if _, err := os.Stat(filepath.Join(dir, runset.AnalysisFile)); err == nil {
		t.Errorf("-o also wrote %s", runset.AnalysisFile)
	}
}

func TestRunstatUsage(t *testing.T) {
	defer func(old func(int)) { exit = old }(exit)
	var code int
	exit = func(c int) { code = c }

	var got, gotErr bytes.Buffer
	if err := runstat(&got, &gotErr, nil); err != errUsage {
		t.Errorf("runstat() = %v, want %v", err, errUsage)
	}
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.HasPrefix(gotErr.String(), "usage: runstat") {
		t.Errorf("stderr = %q, want usage", gotErr.String())
	}
}
