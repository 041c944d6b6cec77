// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import "fmt"

// A Comparison is the difference in one metric between a treatment
// group and a baseline group of runs.
type Comparison struct {
	Metric    string
	Treatment Stats
	Baseline  Stats

	// Improvement is the percentage by which the treatment's mean is
	// below the baseline's. It is positive when the treatment used
	// less of the resource.
	Improvement float64

	// Comparable is false if either group has no measurement of
	// Metric or the baseline mean is zero. In that case Improvement
	// is meaningless.
	Comparable bool
}

// Improvement returns the percentage by which treatment is below
// baseline. It returns 0 if baseline is 0.
func Improvement(treatment, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (baseline - treatment) / baseline * 100
}

// Compare compares the named metric of two aggregates.
func Compare(treatment, baseline Aggregates, metric string) Comparison {
	t, b := treatment[metric], baseline[metric]
	return Comparison{
		Metric:      metric,
		Treatment:   t,
		Baseline:    b,
		Improvement: Improvement(t.Mean, b.Mean),
		Comparable:  t.Count > 0 && b.Count > 0 && b.Mean != 0,
	}
}

// CompareAll compares each of metrics. If metrics is nil, it compares
// every metric present in either aggregate, in sorted order.
func CompareAll(treatment, baseline Aggregates, metrics []string) []Comparison {
	if metrics == nil {
		union := make(Aggregates)
		for name := range treatment {
			union[name] = Stats{}
		}
		for name := range baseline {
			union[name] = Stats{}
		}
		metrics = union.Names()
	}
	out := make([]Comparison, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, Compare(treatment, baseline, m))
	}
	return out
}

// Better reports whether the treatment used less of the metric than
// the baseline.
func (c Comparison) Better() bool {
	return c.Comparable && c.Improvement > 0
}

// FormatImprovement formats c.Improvement as a signed percentage,
// or "~" if the metric could not be compared.
func (c Comparison) FormatImprovement() string {
	if !c.Comparable {
		return "~"
	}
	return fmt.Sprintf("%+.2f%%", c.Improvement)
}
