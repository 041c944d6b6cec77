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

	"github.com/j0nem/multicast-performance/runset"
	"github.com/j0nem/multicast-performance/runstat"
	"github.com/j0nem/multicast-performance/store"
)

func TestRunagg(t *testing.T) {
	base := t.TempDir()
	for name, report := range map[string]string{
		"multicast_4_iter1_a": "Average CPU Usage: 10.00%\nAverage Memory: 2.00 MiB\n",
		"multicast_4_iter2_b": "Average CPU Usage: 20.00%\nAverage Memory: 4.00 MiB\n",
		"unicast_4_iter1_a":   "Average CPU Usage: 30.00%\n",
		"incomplete_iter1_a":  "",
	} {
		dir := filepath.Join(base, name)
		if err := os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
		if report == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, runset.AnalysisFile), []byte(report), 0666); err != nil {
			t.Fatal(err)
		}
	}

	var got, gotErr bytes.Buffer
	if err := runagg(&got, &gotErr, []string{base}); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, gotErr.String())
	}
	out := got.String()
	for _, want := range []string{
		"SCENARIO: multicast_4",
		"Iterations: 2",
		"Average CPU Usage: 15.00%",
		"Average Memory: 3.00 MiB",
		"SCENARIO: unicast_4",
		"Average CPU Usage: 30.00%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "incomplete") {
		t.Errorf("output includes run without a report:\n%s", out)
	}
	if strings.Index(out, "multicast_4") > strings.Index(out, "unicast_4") {
		t.Errorf("scenarios not sorted:\n%s", out)
	}
}

func TestRunaggDB(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "runs.db")
	db, err := store.Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	for _, cpu := range []float64{10, 30} {
		run := &runstat.Run{Label: "multicast_4_iter1_x", Scalars: map[string]float64{"avg_cpu": cpu}}
		if _, err := db.InsertRun(ctx, "multicast_4", run); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	var got, gotErr bytes.Buffer
	if err := runagg(&got, &gotErr, []string{"-db", dsn}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"SCENARIO: multicast_4", "Iterations: 2", "Average CPU Usage: 20.00%"} {
		if !strings.Contains(got.String(), want) {
			t.Errorf("output missing %q:\n%s", want, got.String())
		}
	}
}

func TestRunaggEmpty(t *testing.T) {
	var got, gotErr bytes.Buffer
	if err := runagg(&got, &gotErr, []string{t.TempDir()}); err == nil {
		t.Error("runagg of empty directory succeeded")
	}
}
