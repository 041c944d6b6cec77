// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Stats describes the distribution of one scalar across runs.
type Stats struct {
	Mean float64
	Std  float64 // population standard deviation
	Min  float64
	Max  float64

	// Count is the number of runs that contributed a value.
	Count int
}

// String formats s as "mean ± std".
func (s Stats) String() string {
	return fmt.Sprintf("%.2f ± %.2f", s.Mean, s.Std)
}

// Aggregates maps scalar names to their distribution across a group
// of runs. A scalar is present only if some run contributed to it.
type Aggregates map[string]Stats

// Names returns the metric names in a in sorted order.
func (a Aggregates) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aggregate computes the distribution of the named scalar over runs.
//
// Only strictly positive values contribute. A zero almost always
// means the measurement failed, such as an empty log or a tool that
// wasn't running, and averaging it in would skew the result. The
// second result is false if no run contributed.
func Aggregate(runs []*Run, metric string) (Stats, bool) {
	var xs []float64
	for _, r := range runs {
		if v, ok := r.Scalars[metric]; ok && v > 0 {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return Stats{}, false
	}
	n := float64(len(xs))
	min, max := stats.Bounds(xs)
	// stats.Variance is the sample variance.
	variance := stats.Variance(xs) * (n - 1) / n
	return Stats{
		Mean:  stats.Mean(xs),
		Std:   math.Sqrt(variance),
		Min:   min,
		Max:   max,
		Count: len(xs),
	}, true
}

// AggregateAll aggregates every scalar that appears in any of runs.
func AggregateAll(runs []*Run) Aggregates {
	names := make(map[string]bool)
	for _, r := range runs {
		for name := range r.Scalars {
			names[name] = true
		}
	}
	agg := make(Aggregates)
	for name := range names {
		if s, ok := Aggregate(runs, name); ok {
			agg[name] = s
		}
	}
	return agg
}
