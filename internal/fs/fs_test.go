// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fs

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemFS(t *testing.T) {
	ctx := context.Background()
	fs := NewMemFS()

	if err := WriteFile(ctx, fs, "b.txt", map[string]string{"k": "v"}, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	w, err := fs.NewWriter(ctx, "a.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("partial"))
	w.CloseWithError(errors.New("abort"))
	if _, err := w.Write([]byte("x")); err == nil {
		t.Error("Write after CloseWithError succeeded")
	}

	if diff := cmp.Diff([]string{"b.txt"}, fs.Files()); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	data, meta, ok := fs.Content("b.txt")
	if !ok || string(data) != "hello" || meta["k"] != "v" {
		t.Errorf("Content(b.txt) = %q, %v, %v", data, meta, ok)
	}
}
