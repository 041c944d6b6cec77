// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/j0nem/multicast-performance/statfmt"
)

func TestReduce(t *testing.T) {
	check := func(xs []float64, want Summary) {
		t.Helper()
		if got := Reduce(xs); got != want {
			t.Errorf("Reduce(%v) = %+v, want %+v", xs, got, want)
		}
	}
	check(nil, Summary{})
	check([]float64{}, Summary{})
	for _, v := range []float64{0, 45, 99.5, 200} {
		check([]float64{v}, Summary{v, v, v, 1})
	}
	check([]float64{10, 30, 20}, Summary{20, 30, 60, 3})
}

func scalarRuns(metric string, vals ...float64) []*Run {
	var runs []*Run
	for _, v := range vals {
		runs = append(runs, &Run{Scalars: map[string]float64{metric: v}})
	}
	return runs
}

func TestAggregate(t *testing.T) {
	check := func(runs []*Run, want Stats, wantOK bool) {
		t.Helper()
		got, ok := Aggregate(runs, "avg_cpu")
		if ok != wantOK {
			t.Fatalf("ok = %v, want %v", ok, wantOK)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Aggregate (-want +got):\n%s", diff)
		}
	}
	check(scalarRuns("avg_cpu", 10, 0, 20), Stats{Mean: 15, Std: 5, Min: 10, Max: 20, Count: 2}, true)
	check(scalarRuns("avg_cpu", 7), Stats{Mean: 7, Std: 0, Min: 7, Max: 7, Count: 1}, true)
	check(scalarRuns("avg_cpu", 0, -1), Stats{}, false)
	check(scalarRuns("other", 5), Stats{}, false)
	check(nil, Stats{}, false)

	// Population standard deviation.
	got, _ := Aggregate(scalarRuns("avg_cpu", 2, 4, 4, 4, 5, 5, 7, 9), "avg_cpu")
	if math.Abs(got.Mean-5) > 1e-12 || math.Abs(got.Std-2) > 1e-12 {
		t.Errorf("got mean %v std %v, want 5 and 2", got.Mean, got.Std)
	}
}

func TestAggregateAll(t *testing.T) {
	runs := []*Run{
		{Scalars: map[string]float64{"a": 1, "b": 0}},
		{Scalars: map[string]float64{"a": 3, "c": 2}},
	}
	agg := AggregateAll(runs)
	if diff := cmp.Diff([]string{"a", "c"}, agg.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if agg["a"].Mean != 2 || agg["a"].Count != 2 {
		t.Errorf("a = %+v, want mean 2 count 2", agg["a"])
	}
}

func TestImprovement(t *testing.T) {
	check := func(treatment, baseline, want float64) {
		t.Helper()
		if got := Improvement(treatment, baseline); got != want {
			t.Errorf("Improvement(%v, %v) = %v, want %v", treatment, baseline, got, want)
		}
	}
	check(10, 20, 50)
	check(30, 20, -50)
	check(20, 20, 0)
	check(5, 0, 0)
	check(0, 0, 0)
}

func TestCompare(t *testing.T) {
	treatment := Aggregates{"avg_cpu": {Mean: 10, Count: 3}, "only_t": {Mean: 1, Count: 1}}
	baseline := Aggregates{"avg_cpu": {Mean: 20, Count: 3}}

	c := Compare(treatment, baseline, "avg_cpu")
	if !c.Comparable || c.Improvement != 50 || !c.Better() {
		t.Errorf("avg_cpu: got %+v, want comparable 50%% improvement", c)
	}
	if got, want := c.FormatImprovement(), "+50.00%"; got != want {
		t.Errorf("FormatImprovement() = %q, want %q", got, want)
	}

	c = Compare(treatment, baseline, "only_t")
	if c.Comparable || c.Improvement != 0 {
		t.Errorf("only_t: got %+v, want not comparable", c)
	}
	if got, want := c.FormatImprovement(), "~"; got != want {
		t.Errorf("FormatImprovement() = %q, want %q", got, want)
	}

	var names []string
	for _, c := range CompareAll(treatment, baseline, nil) {
		names = append(names, c.Metric)
	}
	if diff := cmp.Diff([]string{"avg_cpu", "only_t"}, names); diff != "" {
		t.Errorf("CompareAll metrics (-want +got):\n%s", diff)
	}
}

const pidstatLog = `Linux 5.15.0 (server) 	01/02/2026 	_x86_64_	(8 CPU)

10:00:01 AM   UID      TGID       TID    %usr %system  %guest   %wait    %CPU   CPU  Command
10:00:02 AM  1000      1234         -   40.00    5.00    0.00    0.00   45.00     3  quic-server
10:00:02 AM  1000         -      1235   30.00    2.00    0.00    0.00   32.00     3  |__worker
10:00:02 AM  1000         -      1236   30.00    2.00    0.00    0.00  250.00     3  |__bogus

10:00:02 AM   UID      TGID       TID    %usr %system  %guest   %wait    %CPU   CPU  Command
10:00:03 AM  1000         -      1235   10.00    2.00    0.00    0.00   12.00     3  |__worker
`

const sarLog = `10:00:01     IFACE   rxpck/s   txpck/s    rxkB/s    txkB/s
10:00:02        lo   1000.00   1000.00   1000.00   1000.00
10:00:02      eth0     10.00     20.00      1.00      2.00
10:00:02      eth1      5.00      5.00      0.50      0.50

10:00:02     IFACE   rxpck/s   txpck/s    rxkB/s    txkB/s
10:00:03      eth0     30.00     40.00      3.00      4.00
`

func TestBuilder(t *testing.T) {
	var warnings []string
	b := NewBuilder("run1")
	b.Warn = func(format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	if err := b.AddLog(strings.NewReader(pidstatLog), "pidstat.log"); err != nil {
		t.Fatal(err)
	}
	if err := b.AddLog(strings.NewReader(sarLog), "sar.log"); err != nil {
		t.Fatal(err)
	}
	b.AddScalars(map[string]float64{statfmt.TimeUser: 1.5})
	run := b.Build()

	wantSeries := map[string][]float64{
		"cpu":        {45, 32, 12},
		"rx_packets": {15, 30},
		"tx_packets": {25, 40},
		"rx_kib":     {1.5, 3},
		"tx_kib":     {2.5, 4},
	}
	if diff := cmp.Diff(wantSeries, run.Series); diff != "" {
		t.Errorf("series (-want +got):\n%s", diff)
	}

	for name, want := range map[string]float64{
		"avg_cpu":        (45.0 + 32 + 12) / 3,
		"peak_cpu":       45,
		"total_cpu":      89,
		"peak_tx_kib":    4,
		"total_rx_kib":   4.5,
		statfmt.TimeUser: 1.5,
	} {
		got, ok := run.Scalar(name)
		if !ok || math.Abs(got-want) > 1e-9 {
			t.Errorf("scalar %s = %v (present %v), want %v", name, got, ok, want)
		}
	}
	// No memory samples means no memory scalars.
	if _, ok := run.Scalar("avg_memory"); ok {
		t.Errorf("avg_memory present for a run without memory samples")
	}

	threads := run.EntitiesOf(statfmt.KindCPU, "cpu")
	var ids []string
	for _, e := range threads {
		ids = append(ids, e.ID+"/"+e.Name)
	}
	if diff := cmp.Diff([]string{"1234/quic-server", "1235/worker"}, ids); diff != "" {
		t.Errorf("threads (-want +got):\n%s", diff)
	}
	if s := run.Entities["1235"].Summary("cpu"); s != (Summary{22, 32, 44, 2}) {
		t.Errorf("thread 1235 summary = %+v", s)
	}
	if _, ok := run.Entities["lo"]; ok {
		t.Errorf("loopback recorded as an entity")
	}
	if s := run.Entities["eth0"].Summary("tx_kib"); s.Total != 6 {
		t.Errorf("eth0 tx_kib total = %v, want 6", s.Total)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestBuilderSinglePidstatRow(t *testing.T) {
	const log = "10:00:01 AM UID TGID TID %usr %system %guest %wait %CPU CPU Command\n" +
		"10:00:02 AM 1000 1234 - 40.00 5.00 0.00 0.00 45.0 3 server\n"
	b := NewBuilder("r")
	if err := b.AddLog(strings.NewReader(log), "pidstat.log"); err != nil {
		t.Fatal(err)
	}
	run := b.Build()
	if got, want := run.Summary("cpu"), (Summary{45, 45, 45, 1}); got != want {
		t.Errorf("cpu summary = %+v, want %+v", got, want)
	}
}

func TestBuilderWarn(t *testing.T) {
	var warnings []string
	b := NewBuilder("r")
	b.Warn = func(format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	const log = "10:00:01 IFACE rxpck/s txpck/s rxkB/s txkB/s\n10:00:02 lo 1 1 1 1\n10:00:02 eth0 x 1 1 1\n"
	if err := b.AddLog(strings.NewReader(log), "sar.log"); err != nil {
		t.Fatal(err)
	}
	run := b.Build()
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
	if len(run.Series) != 0 || len(run.Scalars) != 0 {
		t.Errorf("got series %v scalars %v, want none", run.Series, run.Scalars)
	}
}
