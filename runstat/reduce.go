// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import "github.com/aclements/go-moremath/stats"

// A Summary reduces a series sampled during one run.
type Summary struct {
	Avg   float64 // mean
	Peak  float64 // maximum
	Total float64 // sum
	N     int     // number of samples
}

// Reduce summarizes xs. The summary of an empty series is all zero.
func Reduce(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	s := stats.Sample{Xs: xs}
	_, peak := s.Bounds()
	return Summary{
		Avg:   s.Mean(),
		Peak:  peak,
		Total: s.Sum(),
		N:     len(xs),
	}
}
