// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statfmt reads the text output of the monitoring tools that
// run alongside a transfer test: sysstat's pidstat and sar, GNU time's
// verbose summary, and Wireshark's capinfos.
//
// pidstat and sar print repeating sections, each a timestamped header
// line followed by whitespace-delimited data rows. The column layout
// of a section depends on the sysstat version and on the locale's
// time format, so every section carries its own column mapping,
// resolved from its header by Locate. A Scanner yields sections one
// at a time and the Extract functions turn their rows into Samples.
//
// Parsing is best-effort throughout. Rows that are truncated, wrapped
// or otherwise malformed are dropped without error, and only I/O
// errors are ever reported.
package statfmt

import "fmt"

// A Kind identifies the type of a sampling section.
type Kind int

const (
	// KindCPU is a pidstat -u section, whose header contains
	// both "UID" and "%CPU".
	KindCPU Kind = iota
	// KindMemory is a pidstat -r section, whose header contains
	// "minflt/s".
	KindMemory
	// KindNetwork is a sar -n DEV section, whose header contains
	// "IFACE".
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindMemory:
		return "memory"
	case KindNetwork:
		return "network"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Column names as they appear in sysstat headers.
const (
	ColUID     = "UID"
	ColTGID    = "TGID"
	ColTID     = "TID"
	ColCPU     = "%CPU"
	ColRSS     = "RSS"
	ColCommand = "Command"
	ColIface   = "IFACE"
	ColRxPck   = "rxpck/s"
	ColTxPck   = "txpck/s"
	ColRxKB    = "rxkB/s"
	ColTxKB    = "txkB/s"
)

// A layout describes how to recognize the header of one kind of
// section and where its columns are when the header doesn't say.
type layout struct {
	markers  []string // all must appear in the header
	targets  []string
	defaults map[string]int
}

// layouts is indexed by Kind, in the order headers are matched.
//
// The default indexes are those of the 12-hour layout, where tokens 0
// and 1 are the time and AM/PM. This is what sysstat prints under
// most English locales.
var layouts = [...]layout{
	KindCPU: {
		markers:  []string{ColUID, ColCPU},
		targets:  []string{ColUID, ColTGID, ColTID, ColCPU, ColCommand},
		defaults: map[string]int{ColUID: 2, ColTGID: 3, ColTID: 4, ColCPU: 9, ColCommand: 11},
	},
	KindMemory: {
		markers:  []string{"minflt/s"},
		targets:  []string{ColUID, ColTGID, ColTID, ColRSS, ColCommand},
		defaults: map[string]int{ColUID: 2, ColTGID: 3, ColTID: 4, ColRSS: 8, ColCommand: 10},
	},
	KindNetwork: {
		markers:  []string{ColIface},
		targets:  []string{ColIface, ColRxPck, ColTxPck, ColRxKB, ColTxKB},
		defaults: map[string]int{ColIface: 2, ColRxPck: 3, ColTxPck: 4, ColRxKB: 5, ColTxKB: 6},
	},
}

// A Section is one timestamped block of sampled rows that share a
// column layout.
type Section struct {
	Kind Kind

	// Header is the header line, split on whitespace.
	Header []string

	// Columns maps each column of interest to its index in Header
	// and in every row of this section.
	Columns map[string]int

	// Rows are the data rows, split on whitespace.
	Rows [][]string

	// FileName and Line give the position of the header line.
	// Line is 1-based.
	FileName string
	Line     int
}

// field returns the value of column col in row.
func (s *Section) field(row []string, col string) (string, bool) {
	i, ok := s.Columns[col]
	if !ok || i < 0 || i >= len(row) {
		return "", false
	}
	return row[i], true
}
