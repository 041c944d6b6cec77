// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/j0nem/multicast-performance/runstat"
	"github.com/j0nem/multicast-performance/store"
	"github.com/j0nem/multicast-performance/store/sqlite3"
	"github.com/j0nem/multicast-performance/store/storetest"
)

func TestInsertRun(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)

	runs := []struct {
		scenario string
		run      *runstat.Run
	}{
		{"multicast_4", &runstat.Run{Label: "multicast_4_iter1_a", Config: "clients=4\n", Scalars: map[string]float64{"avg_cpu": 10, "peak_cpu": 30}}},
		{"unicast_4", &runstat.Run{Label: "unicast_4_iter1_a", Scalars: map[string]float64{"avg_cpu": 20}}},
		{"multicast_4", &runstat.Run{Label: "multicast_4_iter2_a", Scalars: map[string]float64{"avg_cpu": 12}}},
		{"multicast_4", &runstat.Run{Label: "multicast_4_iter3_a"}},
	}
	var last int64
	for _, r := range runs {
		id, err := db.InsertRun(ctx, r.scenario, r.run)
		if err != nil {
			t.Fatalf("InsertRun(%s): %v", r.run.Label, err)
		}
		if id <= last {
			t.Errorf("InsertRun(%s) = %d, want > %d", r.run.Label, id, last)
		}
		last = id
	}

	n, err := db.CountRuns(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(runs) {
		t.Errorf("CountRuns = %d, want %d", n, len(runs))
	}

	scenarios, err := db.Scenarios(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"multicast_4", "unicast_4"}, scenarios); diff != "" {
		t.Errorf("Scenarios mismatch (-want +got):\n%s", diff)
	}

	got, err := db.Runs(ctx, "multicast_4")
	if err != nil {
		t.Fatal(err)
	}
	want := []*runstat.Run{
		{Label: "multicast_4_iter1_a", Config: "clients=4\n", Scalars: map[string]float64{"avg_cpu": 10, "peak_cpu": 30}},
		{Label: "multicast_4_iter2_a", Scalars: map[string]float64{"avg_cpu": 12}},
		{Label: "multicast_4_iter3_a", Scalars: map[string]float64{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Runs mismatch (-want +got):\n%s", diff)
	}

	// Stored runs aggregate like loaded ones.
	agg, ok := runstat.Aggregate(got, "avg_cpu")
	if !ok || agg.Mean != 11 || agg.Count != 2 {
		t.Errorf("Aggregate(avg_cpu) = %+v, %v, want mean 11 over 2 runs", agg, ok)
	}

	got, err = db.Runs(ctx, "broadcast_4")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Runs of unknown scenario = %v, want none", got)
	}
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	db, err := store.Open(path)
	if err != nil {
		t.Fatalf("open %s (sqlite %s): %v", path, sqlite3.Version(), err)
	}
	if _, err := db.InsertRun(ctx, "s", &runstat.Run{Label: "s_iter1_x", Scalars: map[string]float64{"avg_cpu": 1}}); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening keeps the stored runs.
	db, err = store.Open("sqlite3:" + path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := db.Runs(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Scalars["avg_cpu"] != 1 {
		t.Errorf("Runs after reopen = %+v, want one run with avg_cpu 1", runs)
	}
}
