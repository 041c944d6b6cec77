// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runset finds and loads the result directories written by
// the transfer test runner.
//
// A run directory holds the server's monitoring logs, either in a
// "server" subdirectory or directly in the run directory:
//
//	<run>/test_config.txt
//	<run>/server/server_time.log
//	<run>/server/pidstat.log
//	<run>/server/sar_network.log
//	<run>/server/network_capture.pcap
//
// After analysis, a run directory also holds server_analysis.txt,
// the report read by Group.
package runset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/j0nem/multicast-performance/runstat"
	"github.com/j0nem/multicast-performance/statfmt"
)

// File names within a run directory.
const (
	ServerDir    = "server"
	ConfigFile   = "test_config.txt"
	TimeLog      = "server_time.log"
	PidstatLog   = "pidstat.log"
	SarLog       = "sar_network.log"
	CaptureFile  = "network_capture.pcap"
	AnalysisFile = "server_analysis.txt"
)

// A Loader loads run directories.
type Loader struct {
	// Warn, if non-nil, is called for every missing or unreadable
	// file. Loading continues without the file's measurements.
	Warn func(format string, args ...interface{})

	// Capinfos returns the output of capinfos for a capture file.
	// If nil, the capinfos binary is run. If capinfos fails, only
	// the capture's file size is recorded.
	Capinfos func(path string) ([]byte, error)
}

func (l *Loader) warn(format string, args ...interface{}) {
	if l.Warn != nil {
		l.Warn(format, args...)
	}
}

// Load reads the logs in run directory dir. Missing logs contribute
// nothing to the run, so Load only fails if dir itself can't be read.
func (l *Loader) Load(dir string) (*runstat.Run, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}
	logDir := LogDir(dir)

	b := runstat.NewBuilder(dir)
	b.Warn = l.Warn
	if data, err := os.ReadFile(filepath.Join(dir, ConfigFile)); err == nil {
		b.SetConfig(string(data))
	}
	if data, ok := l.read(filepath.Join(logDir, TimeLog)); ok {
		b.AddScalars(statfmt.ParseTime(data))
	}
	for _, name := range []string{PidstatLog, SarLog} {
		l.addLog(b, filepath.Join(logDir, name))
	}
	l.addCapture(b, filepath.Join(logDir, CaptureFile))
	return b.Build(), nil
}

// LoadAll loads each of dirs. It stops at the first directory that
// can't be read.
func (l *Loader) LoadAll(dirs []string) ([]*runstat.Run, error) {
	runs := make([]*runstat.Run, 0, len(dirs))
	for _, dir := range dirs {
		run, err := l.Load(dir)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// LogDir returns the directory holding the monitoring logs of run
// directory dir.
func LogDir(dir string) string {
	sub := filepath.Join(dir, ServerDir)
	if info, err := os.Stat(sub); err == nil && info.IsDir() {
		return sub
	}
	return dir
}

func (l *Loader) read(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.warn("%s not found", path)
		} else {
			l.warn("%v", err)
		}
		return nil, false
	}
	return data, true
}

func (l *Loader) addLog(b *runstat.Builder, path string) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.warn("%s not found", path)
		} else {
			l.warn("%v", err)
		}
		return
	}
	defer f.Close()
	if err := b.AddLog(f, path); err != nil {
		l.warn("%v", err)
	}
}

func (l *Loader) addCapture(b *runstat.Builder, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	capinfos := l.Capinfos
	if capinfos == nil {
		capinfos = runCapinfos
	}
	out, err := capinfos(path)
	if err == nil {
		if m := statfmt.ParseCapinfos(out); len(m) > 0 {
			b.AddScalars(m)
			return
		}
		err = errors.New("no statistics in capinfos output")
	}
	l.warn("%s: %v; recording file size only", path, err)
	b.AddScalars(map[string]float64{statfmt.CapFileSize: float64(info.Size())})
}

func runCapinfos(path string) ([]byte, error) {
	return exec.Command("capinfos", path).Output()
}
