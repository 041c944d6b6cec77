// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runstat

import "github.com/j0nem/multicast-performance/statfmt"

// A Unit is the unit of a metric's values. Percentages are of one
// core and rates are per second.
type Unit int

const (
	UnitCount Unit = iota
	UnitPercent
	UnitKiB
	UnitBytes
	UnitSeconds
	UnitPacketRate
	UnitKiBRate
	UnitByteRate
)

// A Group is a resource that metrics belong to.
type Group string

const (
	GroupCPU     Group = "CPU"
	GroupMemory  Group = "Memory"
	GroupNetwork Group = "Network"
)

// A Metric describes a scalar that is reported and compared.
type Metric struct {
	Name  string
	Label string
	Group Group
	Unit  Unit
}

// Metrics lists the scalars that comparison reports show, grouped by
// resource and in presentation order.
var Metrics = []Metric{
	{AvgName(statfmt.MetricCPU), "Avg CPU", GroupCPU, UnitPercent},
	{PeakName(statfmt.MetricCPU), "Peak CPU", GroupCPU, UnitPercent},
	{statfmt.TimeCPUPercent, "Process CPU", GroupCPU, UnitPercent},
	{statfmt.TimeUser, "User time", GroupCPU, UnitSeconds},
	{statfmt.TimeSystem, "System time", GroupCPU, UnitSeconds},

	{AvgName(statfmt.MetricMemory), "Avg Memory", GroupMemory, UnitKiB},
	{PeakName(statfmt.MetricMemory), "Peak Memory", GroupMemory, UnitKiB},
	{statfmt.TimeMaxRSS, "Max RSS", GroupMemory, UnitKiB},

	{statfmt.CapPackets, "Total Packets", GroupNetwork, UnitCount},
	{statfmt.CapDataSize, "Total Data", GroupNetwork, UnitBytes},
	{AvgName(statfmt.MetricTxKiB), "Avg KiB Sent", GroupNetwork, UnitKiBRate},
	{AvgName(statfmt.MetricRxKiB), "Avg KiB Received", GroupNetwork, UnitKiBRate},
	{AvgName(statfmt.MetricTxPackets), "Avg Packets Sent", GroupNetwork, UnitPacketRate},
	{AvgName(statfmt.MetricRxPackets), "Avg Packets Received", GroupNetwork, UnitPacketRate},
}

// Headline maps each group to the metric that summarizes it.
var Headline = map[Group]string{
	GroupCPU:     AvgName(statfmt.MetricCPU),
	GroupMemory:  AvgName(statfmt.MetricMemory),
	GroupNetwork: statfmt.CapDataSize,
}

// Groups lists the groups in presentation order.
var Groups = []Group{GroupCPU, GroupMemory, GroupNetwork}

// MetricsOf returns the metrics of group g.
func MetricsOf(g Group) []Metric {
	var out []Metric
	for _, m := range Metrics {
		if m.Group == g {
			out = append(out, m)
		}
	}
	return out
}

// LookupMetric returns the description of the named metric.
func LookupMetric(name string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}
