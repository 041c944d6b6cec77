// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runstat summarizes the measurements of transfer test runs
// and compares groups of runs.
//
// A Run holds everything measured during one run: scalar values such
// as GNU time's totals, sampled series such as CPU usage, and the same
// series broken down by thread or interface. Runs are assembled with a
// Builder.
//
// Only scalars are compared across runs. Aggregate reduces a scalar
// over a group of runs to its mean and spread, and Compare expresses
// the difference between two groups as a percentage improvement.
package runstat

import (
	"io"
	"sort"

	"github.com/j0nem/multicast-performance/statfmt"
)

// A Run is the set of measurements taken during one test run.
//
// A Run is not modified after it is built.
type Run struct {
	// Label identifies the run, usually by its directory.
	Label string

	// Config is the test configuration the run was started with,
	// as free-form text. It may be empty.
	Config string

	// Scalars maps metric names to single values for the run.
	// A metric that was not measured is absent, never zero.
	Scalars map[string]float64

	// Series maps metric names to the values sampled over the run,
	// in sampling order.
	Series map[string][]float64

	// Entities holds the series of individual threads and network
	// interfaces, keyed by Entity.ID.
	Entities map[string]*Entity
}

// An Entity is a thread, process or network interface observed
// during a run.
type Entity struct {
	ID   string
	Name string // display name; may be empty
	Kind statfmt.Kind

	Series map[string][]float64
}

// Scalar returns the value of the named scalar and whether it was
// measured.
func (r *Run) Scalar(name string) (float64, bool) {
	v, ok := r.Scalars[name]
	return v, ok
}

// Summary reduces the named series of r.
func (r *Run) Summary(metric string) Summary {
	return Reduce(r.Series[metric])
}

// Summary reduces the named series of e.
func (e *Entity) Summary(metric string) Summary {
	return Reduce(e.Series[metric])
}

// EntitiesOf returns the entities of the given kind, sorted by
// descending average of metric and then by ID.
func (r *Run) EntitiesOf(kind statfmt.Kind, metric string) []*Entity {
	var out []*Entity
	for _, e := range r.Entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Summary(metric).Avg, out[j].Summary(metric).Avg
		if ai != aj {
			return ai > aj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ScalarNames returns the names of r's scalars in sorted order.
func (r *Run) ScalarNames() []string {
	names := make([]string, 0, len(r.Scalars))
	for name := range r.Scalars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A Builder accumulates the measurements of a single run.
type Builder struct {
	run *Run

	// Warn, if non-nil, is called for each section that could not
	// be read from a log.
	Warn func(format string, args ...interface{})
}

// NewBuilder returns a Builder for a run with the given label.
func NewBuilder(label string) *Builder {
	return &Builder{run: &Run{
		Label:    label,
		Scalars:  make(map[string]float64),
		Series:   make(map[string][]float64),
		Entities: make(map[string]*Entity),
	}}
}

func (b *Builder) warn(format string, args ...interface{}) {
	if b.Warn != nil {
		b.Warn(format, args...)
	}
}

// SetConfig records the run's test configuration.
func (b *Builder) SetConfig(config string) {
	b.run.Config = config
}

// AddScalars records scalar measurements. Later values replace
// earlier values of the same name.
func (b *Builder) AddScalars(m map[string]float64) {
	for name, v := range m {
		b.run.Scalars[name] = v
	}
}

// AddLog scans pidstat or sar output from r and adds every section it
// contains. fileName is purely diagnostic. The returned error is from
// reading r; sections read before the error are kept.
func (b *Builder) AddLog(r io.Reader, fileName string) error {
	s := statfmt.NewScanner(r, fileName)
	for s.Scan() {
		b.AddSection(s.Section())
	}
	return s.Err()
}

// AddSection adds the samples of one section.
//
// CPU and memory samples are appended to the run's series as they
// come. Network samples are summed over interfaces, so each network
// section adds one value to each network series.
func (b *Builder) AddSection(sec *statfmt.Section) {
	samples := statfmt.Extract(sec)
	if len(samples) == 0 && len(sec.Rows) > 0 {
		b.warn("%s:%d: no usable %s rows in section", sec.FileName, sec.Line, sec.Kind)
	}

	if sec.Kind != statfmt.KindNetwork {
		for _, smp := range samples {
			b.append(sec.Kind, smp)
		}
		return
	}

	var totals map[string]float64
	var order []string
	for _, smp := range samples {
		if totals == nil {
			totals = make(map[string]float64)
		}
		if _, ok := totals[smp.Metric]; !ok {
			order = append(order, smp.Metric)
		}
		totals[smp.Metric] += smp.Value
		b.appendEntity(sec.Kind, smp)
	}
	for _, metric := range order {
		b.run.Series[metric] = append(b.run.Series[metric], totals[metric])
	}
}

func (b *Builder) append(kind statfmt.Kind, smp statfmt.Sample) {
	b.run.Series[smp.Metric] = append(b.run.Series[smp.Metric], smp.Value)
	b.appendEntity(kind, smp)
}

func (b *Builder) appendEntity(kind statfmt.Kind, smp statfmt.Sample) {
	if smp.Entity == "" {
		return
	}
	e := b.run.Entities[smp.Entity]
	if e == nil {
		e = &Entity{ID: smp.Entity, Kind: kind, Series: make(map[string][]float64)}
		b.run.Entities[smp.Entity] = e
	}
	if e.Name == "" {
		e.Name = smp.Name
	}
	e.Series[smp.Metric] = append(e.Series[smp.Metric], smp.Value)
}

// Build returns the accumulated run. For every non-empty series m,
// Build also records the scalars avg_m, peak_m and total_m.
//
// The Builder must not be used after calling Build.
func (b *Builder) Build() *Run {
	run := b.run
	b.run = nil
	for metric, xs := range run.Series {
		if len(xs) == 0 {
			continue
		}
		s := Reduce(xs)
		run.Scalars[AvgName(metric)] = s.Avg
		run.Scalars[PeakName(metric)] = s.Peak
		run.Scalars[TotalName(metric)] = s.Total
	}
	return run
}

// AvgName returns the name of the scalar holding the mean of the
// series metric.
func AvgName(metric string) string { return "avg_" + metric }

// PeakName returns the name of the scalar holding the maximum of the
// series metric.
func PeakName(metric string) string { return "peak_" + metric }

// TotalName returns the name of the scalar holding the sum of the
// series metric.
func TotalName(metric string) string { return "total_" + metric }
