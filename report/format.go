// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders run analyses and comparisons as text, HTML
// and PNG charts.
package report

import (
	"fmt"

	"github.com/j0nem/multicast-performance/runstat"
)

var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes formats a byte count with a binary unit prefix.
func FormatBytes(b float64) string {
	for _, unit := range byteUnits {
		if b < 1024 {
			return fmt.Sprintf("%.2f %s", b, unit)
		}
		b /= 1024
	}
	return fmt.Sprintf("%.2f TB", b)
}

// FormatValue formats v as a value of unit u.
func FormatValue(u runstat.Unit, v float64) string {
	switch u {
	case runstat.UnitPercent:
		return fmt.Sprintf("%.2f%%", v)
	case runstat.UnitKiB:
		return FormatBytes(v * 1024)
	case runstat.UnitBytes:
		return FormatBytes(v)
	case runstat.UnitSeconds:
		return fmt.Sprintf("%.2fs", v)
	case runstat.UnitPacketRate:
		return fmt.Sprintf("%.2f pkt/s", v)
	case runstat.UnitKiBRate:
		return fmt.Sprintf("%.2f KiB/s", v)
	case runstat.UnitByteRate:
		return FormatBytes(v) + "/s"
	}
	return fmt.Sprintf("%.0f", v)
}

// FormatStats formats the mean and standard deviation of s.
func FormatStats(u runstat.Unit, s runstat.Stats) string {
	if s.Count == 0 {
		return "-"
	}
	return FormatValue(u, s.Mean) + " ± " + FormatValue(u, s.Std)
}

// A Pair is a treatment group and a baseline group of runs.
type Pair struct {
	TreatmentName string
	BaselineName  string

	TreatmentRuns int
	BaselineRuns  int

	Treatment runstat.Aggregates
	Baseline  runstat.Aggregates
}

// Rows compares the metrics of group g that either side measured.
func (p *Pair) Rows(g runstat.Group) []runstat.Comparison {
	var names []string
	for _, m := range runstat.MetricsOf(g) {
		_, t := p.Treatment[m.Name]
		_, b := p.Baseline[m.Name]
		if t || b {
			names = append(names, m.Name)
		}
	}
	if names == nil {
		return nil
	}
	return runstat.CompareAll(p.Treatment, p.Baseline, names)
}

// Headline compares the metric that summarizes group g.
func (p *Pair) Headline(g runstat.Group) runstat.Comparison {
	return runstat.Compare(p.Treatment, p.Baseline, runstat.Headline[g])
}
