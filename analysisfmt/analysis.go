// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysisfmt reads and writes the per-run analysis report,
// a text file with one "Label: value unit" line per summary metric.
//
// The labels are stable: reports written by earlier versions of the
// analysis tools, which may contain other free-form text around these
// lines, can still be parsed.
package analysisfmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/j0nem/multicast-performance/runstat"
	"github.com/j0nem/multicast-performance/statfmt"
)

// A field maps a report label to a run scalar. Report values are the
// scalar's value multiplied by scale.
type field struct {
	label  string
	metric string
	unit   string // printed after the value, including any space
	scale  float64
}

const kibPerMiB = 1024

var fields = []field{
	{"Average CPU Usage", runstat.AvgName(statfmt.MetricCPU), "%", 1},
	{"Peak CPU Usage", runstat.PeakName(statfmt.MetricCPU), "%", 1},
	{"Average Memory", runstat.AvgName(statfmt.MetricMemory), " MiB", 1.0 / kibPerMiB},
	{"Peak Memory", runstat.PeakName(statfmt.MetricMemory), " MiB", 1.0 / kibPerMiB},
	{"Average Packets Received", runstat.AvgName(statfmt.MetricRxPackets), " packets/s", 1},
	{"Peak Packets Received", runstat.PeakName(statfmt.MetricRxPackets), " packets/s", 1},
	{"Average Packets Sent", runstat.AvgName(statfmt.MetricTxPackets), " packets/s", 1},
	{"Peak Packets Sent", runstat.PeakName(statfmt.MetricTxPackets), " packets/s", 1},
	{"Average KiB Received", runstat.AvgName(statfmt.MetricRxKiB), " KiB/s", 1},
	{"Peak KiB Received", runstat.PeakName(statfmt.MetricRxKiB), " KiB/s", 1},
	{"Average KiB Sent", runstat.AvgName(statfmt.MetricTxKiB), " KiB/s", 1},
	{"Peak KiB Sent", runstat.PeakName(statfmt.MetricTxKiB), " KiB/s", 1},
}

var fieldRE = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(fields))
	for i, f := range fields {
		res[i] = regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(f.label) + `:\s+(-?[\d.]+)\s*` + regexp.QuoteMeta(strings.TrimSpace(f.unit)))
	}
	return res
}()

// ErrNoMetrics is returned by Parse when its input contains none of
// the report's metric lines.
var ErrNoMetrics = errors.New("no analysis metrics found")

// Metrics returns the names of the scalars an analysis report can
// carry, in report order.
func Metrics() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.metric
	}
	return out
}

// Write writes a line for each report metric present in run.
// Metrics that run did not measure are omitted.
func Write(w io.Writer, run *runstat.Run) error {
	return WriteMetrics(w, run)
}

// WriteMetrics is like Write, but only writes the named metrics.
// With no names, it writes every report metric.
func WriteMetrics(w io.Writer, run *runstat.Run, metrics ...string) error {
	bw := bufio.NewWriter(w)
	for _, f := range fields {
		if len(metrics) > 0 && !contains(metrics, f.metric) {
			continue
		}
		v, ok := run.Scalar(f.metric)
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "%s: %.2f%s\n", f.label, v*f.scale, f.unit)
	}
	return bw.Flush()
}

// Parse reads an analysis report and returns a run with the label
// and the scalars it contains. Labels that are missing from data are
// absent from the run's scalars.
func Parse(data []byte, label string) (*runstat.Run, error) {
	run := &runstat.Run{
		Label:    label,
		Scalars:  make(map[string]float64),
		Series:   make(map[string][]float64),
		Entities: make(map[string]*runstat.Entity),
	}
	for i, f := range fields {
		m := fieldRE[i].FindSubmatch(data)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(string(m[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", label, f.label, err)
		}
		run.Scalars[f.metric] = v / f.scale
	}
	if len(run.Scalars) == 0 {
		return nil, fmt.Errorf("%s: %w", label, ErrNoMetrics)
	}
	return run, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
