// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/j0nem/multicast-performance/analysisfmt"
	"github.com/j0nem/multicast-performance/internal/texttab"
	"github.com/j0nem/multicast-performance/runset"
	"github.com/j0nem/multicast-performance/runstat"
	"github.com/j0nem/multicast-performance/statfmt"
)

const width = 80

// maxThreads limits the per-thread table of a run report.
const maxThreads = 20

func banner(w io.Writer, title string) {
	rule := strings.Repeat("=", width)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// FormatRun writes the analysis report of a single run.
//
// The report includes the lines written by analysisfmt.Write, so it
// can be read back with analysisfmt.Parse.
func FormatRun(w io.Writer, run *runstat.Run) error {
	bw := bufio.NewWriter(w)

	banner(bw, "SERVER ANALYSIS: "+run.Label)
	if run.Config != "" {
		fmt.Fprintf(bw, "\nTest configuration:\n%s", run.Config)
		if !strings.HasSuffix(run.Config, "\n") {
			fmt.Fprintln(bw)
		}
	}

	banner(bw, "PROCESS SUMMARY (time -v)")
	var tab texttab.Table
	for _, s := range []struct {
		name  string
		label string
		unit  runstat.Unit
	}{
		{statfmt.TimeUser, "User time", runstat.UnitSeconds},
		{statfmt.TimeSystem, "System time", runstat.UnitSeconds},
		{statfmt.TimeElapsed, "Elapsed time", runstat.UnitSeconds},
		{statfmt.TimeCPUPercent, "CPU", runstat.UnitPercent},
		{statfmt.TimeMaxRSS, "Max RSS", runstat.UnitKiB},
		{statfmt.TimeVoluntaryCS, "Voluntary context switches", runstat.UnitCount},
		{statfmt.TimeInvoluntaryCS, "Involuntary context switches", runstat.UnitCount},
	} {
		if v, ok := run.Scalar(s.name); ok {
			tab.Row().Cell(s.label + ":").Cell(FormatValue(s.unit, v), texttab.Right)
		}
	}
	if err := formatOrNone(bw, &tab, "no time summary"); err != nil {
		return err
	}

	banner(bw, "CPU AND MEMORY")
	cpu, mem := run.Summary(statfmt.MetricCPU), run.Summary(statfmt.MetricMemory)
	fmt.Fprintf(bw, "CPU samples: %d\nMemory samples: %d\n", cpu.N, mem.N)
	if err := analysisfmt.WriteMetrics(bw, run,
		runstat.AvgName(statfmt.MetricCPU), runstat.PeakName(statfmt.MetricCPU),
		runstat.AvgName(statfmt.MetricMemory), runstat.PeakName(statfmt.MetricMemory)); err != nil {
		return err
	}

	threads := run.EntitiesOf(statfmt.KindCPU, statfmt.MetricCPU)
	if len(threads) > 0 {
		fmt.Fprintf(bw, "\nPer-thread CPU usage:\n")
		tab = texttab.Table{}
		tab.Row().Cell("ID").Cell("Name").Cell("Avg CPU", texttab.Right).Cell("Peak CPU", texttab.Right).Cell("Samples", texttab.Right)
		tab.Rule('-')
		for i, e := range threads {
			if i == maxThreads {
				break
			}
			s := e.Summary(statfmt.MetricCPU)
			tab.Row().Cell(e.ID).Cell(e.Name).
				Cell(FormatValue(runstat.UnitPercent, s.Avg), texttab.Right).
				Cell(FormatValue(runstat.UnitPercent, s.Peak), texttab.Right).
				Cell(strconv.Itoa(s.N), texttab.Right)
		}
		if err := tab.Format(bw); err != nil {
			return err
		}
	}

	banner(bw, "NETWORK")
	if err := analysisfmt.WriteMetrics(bw, run,
		runstat.AvgName(statfmt.MetricRxPackets), runstat.PeakName(statfmt.MetricRxPackets),
		runstat.AvgName(statfmt.MetricTxPackets), runstat.PeakName(statfmt.MetricTxPackets),
		runstat.AvgName(statfmt.MetricRxKiB), runstat.PeakName(statfmt.MetricRxKiB),
		runstat.AvgName(statfmt.MetricTxKiB), runstat.PeakName(statfmt.MetricTxKiB)); err != nil {
		return err
	}
	ifaces := run.EntitiesOf(statfmt.KindNetwork, statfmt.MetricTxKiB)
	if len(ifaces) > 0 {
		fmt.Fprintf(bw, "\nPer-interface throughput:\n")
		tab = texttab.Table{}
		tab.Row().Cell("Interface").Cell("Avg sent", texttab.Right).Cell("Avg received", texttab.Right)
		tab.Rule('-')
		for _, e := range ifaces {
			tab.Row().Cell(e.Name).
				Cell(FormatValue(runstat.UnitKiBRate, e.Summary(statfmt.MetricTxKiB).Avg), texttab.Right).
				Cell(FormatValue(runstat.UnitKiBRate, e.Summary(statfmt.MetricRxKiB).Avg), texttab.Right)
		}
		if err := tab.Format(bw); err != nil {
			return err
		}
	}

	fmt.Fprintf(bw, "\nPacket capture:\n")
	tab = texttab.Table{}
	for _, s := range []struct {
		name  string
		label string
		unit  runstat.Unit
	}{
		{statfmt.CapPackets, "Packets", runstat.UnitCount},
		{statfmt.CapFileSize, "File size", runstat.UnitBytes},
		{statfmt.CapDataSize, "Data size", runstat.UnitBytes},
		{statfmt.CapPacketRate, "Average packet rate", runstat.UnitPacketRate},
		{statfmt.CapDataRate, "Average data rate", runstat.UnitByteRate},
	} {
		if v, ok := run.Scalar(s.name); ok {
			tab.Row().Cell(s.label + ":").Cell(FormatValue(s.unit, v), texttab.Right)
		}
	}
	if err := formatOrNone(bw, &tab, "no capture statistics"); err != nil {
		return err
	}
	return bw.Flush()
}

func formatOrNone(w io.Writer, tab *texttab.Table, none string) error {
	var buf strings.Builder
	if err := tab.Format(&buf); err != nil {
		return err
	}
	if buf.Len() == 0 {
		_, err := fmt.Fprintf(w, "(%s)\n", none)
		return err
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatComparison writes a text comparison of p's two groups.
func FormatComparison(w io.Writer, p *Pair) error {
	bw := bufio.NewWriter(w)
	banner(bw, strings.ToUpper(p.TreatmentName+" vs "+p.BaselineName)+" COMPARISON")
	fmt.Fprintf(bw, "%s runs: %d\n%s runs: %d\n", p.TreatmentName, p.TreatmentRuns, p.BaselineName, p.BaselineRuns)

	for _, g := range runstat.Groups {
		rows := p.Rows(g)
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n%s\n", strings.ToUpper(string(g)))
		var tab texttab.Table
		tab.Row().Cell("Metric").Cell(p.TreatmentName, texttab.Right).Cell(p.BaselineName, texttab.Right).Cell("Improvement", texttab.Right)
		tab.Rule('-')
		for _, c := range rows {
			m, _ := runstat.LookupMetric(c.Metric)
			tab.Row().Cell(m.Label).
				Cell(FormatStats(m.Unit, c.Treatment), texttab.Right).
				Cell(FormatStats(m.Unit, c.Baseline), texttab.Right).
				Cell(c.FormatImprovement(), texttab.Right)
		}
		if err := tab.Format(bw); err != nil {
			return err
		}
	}

	banner(bw, "SUMMARY")
	fmt.Fprintf(bw, "Improvement is relative to %s; positive means %s used less.\n\n", p.BaselineName, p.TreatmentName)
	for _, g := range runstat.Groups {
		fmt.Fprintf(bw, "%s: %s\n", g, verdict(p.Headline(g)))
	}
	return bw.Flush()
}

func verdict(c runstat.Comparison) string {
	switch {
	case !c.Comparable:
		return "not comparable"
	case c.Better():
		return fmt.Sprintf("✓ Better (%s)", c.FormatImprovement())
	}
	return fmt.Sprintf("✗ Worse (%s)", c.FormatImprovement())
}

// FormatScenarios writes the mean of every analysis metric for each
// scenario, in the format written by analysisfmt.
func FormatScenarios(w io.Writer, scenarios []*runset.Scenario) error {
	bw := bufio.NewWriter(w)
	for _, s := range scenarios {
		banner(bw, "SCENARIO: "+s.Name)
		fmt.Fprintf(bw, "Iterations: %d\n\n", len(s.Runs))
		means := &runstat.Run{Label: s.Name, Scalars: make(map[string]float64)}
		for name, st := range s.Aggregate() {
			means.Scalars[name] = st.Mean
		}
		if err := analysisfmt.Write(bw, means); err != nil {
			return err
		}
	}
	return bw.Flush()
}
