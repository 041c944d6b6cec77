// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Dirs expands glob patterns into run directories.
type Dirs struct {
	// Patterns is the list of glob patterns, in filepath.Match
	// syntax. Each must match at least one directory.
	Patterns []string

	// Glob lists the paths matching a pattern. If nil,
	// filepath.Glob is used.
	Glob func(pattern string) ([]string, error)
}

// A NoMatchError reports a pattern that matched no directories.
type NoMatchError struct {
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no run directories match %q", e.Pattern)
}

// Expand returns the directories matched by d.Patterns, sorted and
// without duplicates. Matches that are not directories are ignored.
func (d *Dirs) Expand() ([]string, error) {
	glob := d.Glob
	if glob == nil {
		glob = filepath.Glob
	}
	seen := make(map[string]bool)
	var out []string
	for _, pat := range d.Patterns {
		matches, err := glob(pat)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pat, err)
		}
		n := 0
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || !info.IsDir() {
				continue
			}
			n++
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
		if n == 0 {
			return nil, &NoMatchError{pat}
		}
	}
	sort.Strings(out)
	return out, nil
}
