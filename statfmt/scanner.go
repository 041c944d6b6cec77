// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Scanner reads sampling sections from pidstat or sar output.
//
// Its API is modeled on bufio.Scanner. Unlike benchmark readers,
// a Scanner allocates a fresh Section on every call to Scan, so
// callers may retain sections.
//
// To construct a new Scanner, either call NewScanner, or call Reset on
// a zeroed Scanner.
type Scanner struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error

	// unread holds a line that ended the previous section. It is
	// examined again before reading further input since it may be
	// the header of the next section.
	unread    []string
	hasUnread bool

	sec *Section
}

// A ReadError records an I/O error encountered while scanning a
// monitoring log.
type ReadError struct {
	FileName string
	Line     int
	Err      error
}

func (e *ReadError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.FileName, e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// maxLine is the longest line a Scanner accepts. pidstat lines
// with long command names can exceed bufio's default.
const maxLine = 1 << 20

// NewScanner constructs a scanner that reads sections from r.
// fileName is used in section positions and error messages; it is
// purely diagnostic.
func NewScanner(r io.Reader, fileName string) *Scanner {
	s := new(Scanner)
	s.Reset(r, fileName)
	return s
}

// Reset resets the scanner to begin reading from a new input.
func (s *Scanner) Reset(r io.Reader, fileName string) {
	s.s = bufio.NewScanner(r)
	s.s.Buffer(nil, maxLine)
	if fileName == "" {
		fileName = "<unknown>"
	}
	s.fileName = fileName
	s.line = 0
	s.err = nil
	s.unread, s.hasUnread = nil, false
	s.sec = nil
}

// Scan advances to the next section in the input. It returns false
// when it reaches the end of the input or an I/O error. After Scan
// returns false, Err returns the error, if any.
func (s *Scanner) Scan() bool {
	if s.s == nil {
		return false
	}
	s.sec = nil
	for {
		fields, ok := s.next()
		if !ok {
			return false
		}
		kind, ok := headerKind(fields)
		if !ok {
			continue
		}
		l := &layouts[kind]
		s.sec = &Section{
			Kind:     kind,
			Header:   fields,
			Columns:  Locate(fields, l.targets, l.defaults),
			FileName: s.fileName,
			Line:     s.line,
		}
		break
	}
	for {
		fields, ok := s.next()
		if !ok {
			// End of input also ends the section.
			return true
		}
		if endsSection(fields) {
			s.unread, s.hasUnread = fields, true
			return true
		}
		s.sec.Rows = append(s.sec.Rows, fields)
	}
}

// next returns the fields of the next input line.
func (s *Scanner) next() ([]string, bool) {
	if s.hasUnread {
		fields := s.unread
		s.unread, s.hasUnread = nil, false
		return fields, true
	}
	if s.err != nil || !s.s.Scan() {
		if s.err == nil && s.s.Err() != nil {
			s.err = &ReadError{s.fileName, s.line + 1, s.s.Err()}
		}
		return nil, false
	}
	s.line++
	return strings.Fields(s.s.Text()), true
}

// Section returns the section most recently read by Scan. It returns
// nil if Scan has not been called or returned false.
func (s *Scanner) Section() *Section {
	return s.sec
}

// Err returns the first I/O error encountered by the Scanner.
func (s *Scanner) Err() error {
	return s.err
}

// headerKind reports whether fields is a section header and, if so,
// which kind of section it opens.
func headerKind(fields []string) (Kind, bool) {
	if len(fields) == 0 || !isClock(fields[0]) {
		return 0, false
	}
	for kind := range layouts {
		if hasAll(fields, layouts[kind].markers) {
			return Kind(kind), true
		}
	}
	return 0, false
}

// endsSection reports whether fields terminates the current section:
// a blank line, a header of any kind, or a sysstat banner.
func endsSection(fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == "Linux" {
			return true
		}
		for i := range layouts {
			for _, m := range layouts[i].markers {
				if f == m {
					return true
				}
			}
		}
	}
	return false
}

func hasAll(fields, want []string) bool {
	for _, w := range want {
		found := false
		for _, f := range fields {
			if f == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// isClock reports whether s is a clock time of the form hh:mm:ss.
// A trailing AM/PM is a separate field in sysstat output.
func isClock(s string) bool {
	if len(s) != len("hh:mm:ss") || s[2] != ':' || s[5] != ':' {
		return false
	}
	for _, i := range [...]int{0, 1, 3, 4, 6, 7} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
