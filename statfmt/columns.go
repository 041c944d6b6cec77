// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

// Locate returns the index in header of each name in targets.
//
// The first token in header equal to a target gives its index. A
// target that does not appear in header gets its index from defaults,
// and is omitted from the result if it has no default either. Locate
// never fails: sysstat renames and moves columns between versions,
// and the defaults describe the most common layout.
func Locate(header []string, targets []string, defaults map[string]int) map[string]int {
	cols := make(map[string]int, len(targets))
	for _, name := range targets {
		idx, ok := defaults[name]
		for i, tok := range header {
			if tok == name {
				idx, ok = i, true
				break
			}
		}
		if ok {
			cols[name] = idx
		}
	}
	return cols
}
