// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"regexp"
	"strconv"
	"strings"
)

// Scalar names produced by ParseTime.
const (
	TimeUser          = "user_time"            // seconds
	TimeSystem        = "system_time"          // seconds
	TimeElapsed       = "elapsed_time"         // seconds
	TimeCPUPercent    = "cpu_percent"          // percent of one core
	TimeMaxRSS        = "max_rss_kb"           // KiB
	TimeVoluntaryCS   = "voluntary_switches"   // count
	TimeInvoluntaryCS = "involuntary_switches" // count
)

var timePatterns = [...]struct {
	name string
	re   *regexp.Regexp
}{
	{TimeUser, regexp.MustCompile(`User time \(seconds\): ([\d.]+)`)},
	{TimeSystem, regexp.MustCompile(`System time \(seconds\): ([\d.]+)`)},
	{TimeCPUPercent, regexp.MustCompile(`Percent of CPU this job got: (\d+)%`)},
	{TimeMaxRSS, regexp.MustCompile(`Maximum resident set size \(kbytes\): (\d+)`)},
	{TimeVoluntaryCS, regexp.MustCompile(`Voluntary context switches: (\d+)`)},
	{TimeInvoluntaryCS, regexp.MustCompile(`Involuntary context switches: (\d+)`)},
}

var elapsedRE = regexp.MustCompile(`Elapsed \(wall clock\) time \([^)]*\): ([\d:.]+)`)

// ParseTime parses the summary printed by GNU time -v. Quantities
// that do not appear in data are absent from the result.
func ParseTime(data []byte) map[string]float64 {
	m := make(map[string]float64)
	for _, p := range timePatterns {
		sub := p.re.FindSubmatch(data)
		if sub == nil {
			continue
		}
		if v, err := strconv.ParseFloat(string(sub[1]), 64); err == nil {
			m[p.name] = v
		}
	}
	if sub := elapsedRE.FindSubmatch(data); sub != nil {
		if v, ok := parseClock(string(sub[1])); ok {
			m[TimeElapsed] = v
		}
	}
	return m
}

// parseClock parses an h:mm:ss or m:ss.ss duration into seconds.
func parseClock(s string) (float64, bool) {
	var secs float64
	for _, part := range strings.Split(s, ":") {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		secs = secs*60 + v
	}
	return secs, true
}
