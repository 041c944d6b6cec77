// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"regexp"
	"strconv"
	"strings"
)

// Scalar names produced by ParseCapinfos.
const (
	CapPackets    = "total_packets"
	CapFileSize   = "file_size_bytes"
	CapDataSize   = "data_size_bytes"
	CapPacketRate = "avg_packet_rate" // packets/s
	CapDataRate   = "avg_data_rate"   // bytes/s
)

// Depending on its version and flags, capinfos prints either exact
// counts ("1234 bytes") or abbreviated ones ("1,234 kB"). The second
// group captures the SI prefix of the unit, if any.
var capinfosPatterns = [...]struct {
	name string
	re   *regexp.Regexp
}{
	{CapPackets, regexp.MustCompile(`Number of packets\s*[:=]\s+([\d,.]+)\s*([kMG]?)`)},
	{CapFileSize, regexp.MustCompile(`File size\s*[:=]\s+([\d,.]+)\s*([kMG]?)`)},
	{CapDataSize, regexp.MustCompile(`Data size\s*[:=]\s+([\d,.]+)\s*([kMG]?)`)},
	{CapPacketRate, regexp.MustCompile(`Average packet rate\s*[:=]\s+([\d,.]+)\s*([kMG]?)`)},
	{CapDataRate, regexp.MustCompile(`Average data rate\s*[:=]\s+([\d,.]+)\s*([kMG]?)`)},
}

var siPrefix = map[string]float64{"": 1, "k": 1e3, "M": 1e6, "G": 1e9}

// ParseCapinfos parses the output of capinfos for a single capture
// file. Quantities that do not appear in data are absent from the
// result.
func ParseCapinfos(data []byte) map[string]float64 {
	m := make(map[string]float64)
	for _, p := range capinfosPatterns {
		sub := p.re.FindSubmatch(data)
		if sub == nil {
			continue
		}
		digits := strings.ReplaceAll(string(sub[1]), ",", "")
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			continue
		}
		m[p.name] = v * siPrefix[string(sub[2])]
	}
	return m
}
