// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcs

import "testing"

func TestContentType(t *testing.T) {
	check := func(name, want string) {
		t.Helper()
		if got := contentType(name); got != want {
			t.Errorf("contentType(%q) = %q, want %q", name, got, want)
		}
	}
	check("cpu_memory_comparison.png", "image/png")
	check("reports/comparison.html", "text/html; charset=utf-8")
	check("comparison.txt", "text/plain; charset=utf-8")
}
