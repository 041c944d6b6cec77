// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"math"
	"strconv"
	"strings"
)

// A Sample is one plausible measurement read from a section row.
type Sample struct {
	// Metric is the name of the measured quantity, one of the
	// Metric* constants.
	Metric string

	Value float64

	// Entity identifies the thread, process or interface the
	// sample belongs to, or is "" if the row does not say.
	Entity string

	// Name is the display name of Entity, if known.
	Name string
}

// Metric names of extracted samples.
const (
	MetricCPU       = "cpu"        // percent of one core
	MetricMemory    = "memory"     // resident set size, KiB
	MetricRxPackets = "rx_packets" // packets/s
	MetricTxPackets = "tx_packets" // packets/s
	MetricRxKiB     = "rx_kib"     // KiB/s
	MetricTxKiB     = "tx_kib"     // KiB/s
)

// Plausibility limits. pidstat reports %CPU per core, so a process
// may exceed 100 on a multi-core machine; values past MaxCPU come
// from wrapped or misaligned rows.
const (
	MaxCPU = 200
	MinRSS = 100
)

// minCPUFields is the fewest fields a CPU row can have and still
// carry a %CPU value in the 24-hour layout.
const minCPUFields = 9

// loopback is the interface excluded from network samples.
const loopback = "lo"

// Extract returns the samples of s according to its kind.
func Extract(s *Section) []Sample {
	switch s.Kind {
	case KindCPU:
		return ExtractCPU(s)
	case KindMemory:
		return ExtractMemory(s)
	case KindNetwork:
		return ExtractNetwork(s)
	}
	return nil
}

// ExtractCPU returns the %CPU samples of a CPU section. Each sample is
// attributed to the row's thread ID, or its thread group ID for
// process rows.
func ExtractCPU(s *Section) []Sample {
	var out []Sample
	for _, row := range s.Rows {
		if len(row) < minCPUFields {
			continue
		}
		v, ok := s.number(row, ColCPU)
		if !ok || v < 0 || v > MaxCPU {
			continue
		}
		smp := Sample{Metric: MetricCPU, Value: v, Entity: s.entity(row)}
		if smp.Entity != "" {
			smp.Name = s.command(row)
		}
		out = append(out, smp)
	}
	return out
}

// ExtractMemory returns the RSS samples, in KiB, of a memory section.
func ExtractMemory(s *Section) []Sample {
	var out []Sample
	for _, row := range s.Rows {
		v, ok := s.number(row, ColRSS)
		if !ok || v <= MinRSS {
			continue
		}
		out = append(out, Sample{Metric: MetricMemory, Value: v})
	}
	return out
}

var networkCols = [...]struct{ col, metric string }{
	{ColRxPck, MetricRxPackets},
	{ColTxPck, MetricTxPackets},
	{ColRxKB, MetricRxKiB},
	{ColTxKB, MetricTxKiB},
}

// ExtractNetwork returns the per-interface rate samples of a network
// section. The loopback interface is skipped. A row contributes all
// four rates or none.
func ExtractNetwork(s *Section) []Sample {
	var out []Sample
rows:
	for _, row := range s.Rows {
		iface, ok := s.field(row, ColIface)
		if !ok || iface == loopback {
			continue
		}
		var vals [len(networkCols)]float64
		for i, nc := range networkCols {
			v, ok := s.number(row, nc.col)
			if !ok || v < 0 {
				continue rows
			}
			vals[i] = v
		}
		for i, nc := range networkCols {
			out = append(out, Sample{Metric: nc.metric, Value: vals[i], Entity: iface, Name: iface})
		}
	}
	return out
}

// entity returns the thread or process ID of a pidstat row, or "" if
// the row has neither.
func (s *Section) entity(row []string) string {
	for _, col := range [...]string{ColTID, ColTGID} {
		if id, ok := s.field(row, col); ok && id != "-" {
			return id
		}
	}
	return ""
}

// command returns the command name of a pidstat row. Command names
// come last and never contain spaces, so the last field is used even
// when the column index is off by one.
func (s *Section) command(row []string) string {
	i, ok := s.Columns[ColCommand]
	if !ok || len(row) <= i {
		return ""
	}
	return strings.TrimPrefix(row[len(row)-1], "|__")
}

// number parses the value of column col in row.
func (s *Section) number(row []string, col string) (float64, bool) {
	f, ok := s.field(row, col)
	if !ok {
		return 0, false
	}
	return parseNumber(f)
}

// parseNumber parses a sysstat number. Some locales print a decimal
// comma, which is accepted when it is the only separator.
func parseNumber(f string) (float64, bool) {
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		if strings.Count(f, ",") != 1 || strings.Contains(f, ".") {
			return 0, false
		}
		v, err = strconv.ParseFloat(strings.Replace(f, ",", ".", 1), 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
