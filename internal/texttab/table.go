// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can chain them to
// build up a row at once.
type Table struct {
	rows   [][]cell
	widths []int
}

type cell struct {
	value     string
	alignment align
	rule      rune // if non-zero, the row is a horizontal rule
}

// A CellOption changes the presentation of a cell.
type CellOption func(c *cell)

var (
	Left   CellOption = func(c *cell) { c.alignment = alignLeft }
	Center CellOption = func(c *cell) { c.alignment = alignCenter }
	Right  CellOption = func(c *cell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// pad pads s to width w according to a. Left-aligned values are not
// padded on the right, so rows don't end in spaces.
func (a align) pad(s string, w int, last bool) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case alignCenter:
		l := n / 2
		s = strings.Repeat(" ", l) + s
		n -= l
	case alignRight:
		return strings.Repeat(" ", n) + s
	}
	if last {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell to the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := len(t.rows) - 1
	col := len(t.rows[r])
	t.rows[r] = append(t.rows[r], c)
	for len(t.widths) <= col {
		t.widths = append(t.widths, 0)
	}
	if w := utf8.RuneCountInString(value); w > t.widths[col] {
		t.widths[col] = w
	}
	return t
}

// Rule adds a row that is a horizontal line of ch spanning the
// table.
func (t *Table) Rule(ch rune) *Table {
	t.rows = append(t.rows, []cell{{rule: ch}})
	return t
}

// Format lays out table t and writes it to w. Columns are separated
// by two spaces.
func (t *Table) Format(w io.Writer) error {
	const sep = "  "
	total := 0
	for i, cw := range t.widths {
		if i > 0 {
			total += len(sep)
		}
		total += cw
	}
	var buf strings.Builder
	for _, row := range t.rows {
		buf.Reset()
		if len(row) == 1 && row[0].rule != 0 {
			buf.WriteString(strings.Repeat(string(row[0].rule), total))
		}
		for i, c := range row {
			if c.rule != 0 {
				continue
			}
			if i > 0 {
				buf.WriteString(sep)
			}
			buf.WriteString(c.alignment.pad(c.value, t.widths[i], i == len(row)-1))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(buf.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
