// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Runstat analyzes the server logs of one test run.
//
// Usage:
//
//	runstat [-o file] [-db dsn] [-v] dir
//
// Dir is a run directory as written by the test runner. Its server
// logs are read from dir/server, or from dir itself if it has no
// server subdirectory:
//
//	server_time.log      output of /usr/bin/time -v
//	pidstat.log          output of pidstat -u -r -t
//	sar_network.log      output of sar -n DEV
//	network_capture.pcap packet capture, summarized with capinfos
//
// along with an optional dir/test_config.txt, which is copied into the
// report. Missing files are skipped with a warning.
//
// Runstat prints the run's report and writes it to
// dir/server_analysis.txt, or to the file named by -o. The report is
// the input of runagg.
//
// With -db, runstat also saves the run's metrics in the database named
// by dsn, under the scenario derived from the directory name (the
// part before "_iterN_"). A dsn is a sqlite3 file name, or
// "mysql:user:password@tcp(host)/dbname".
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/j0nem/multicast-performance/report"
	"github.com/j0nem/multicast-performance/runset"
	"github.com/j0nem/multicast-performance/store"
	_ "github.com/j0nem/multicast-performance/store/mysql"
	_ "github.com/j0nem/multicast-performance/store/sqlite3"
)

var exit = os.Exit // replaced during testing

var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("runstat: ")
	log.SetFlags(0)
	if err := runstat(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func runstat(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("runstat", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: runstat [flags] dir\n")
		flags.PrintDefaults()
		exit(2)
	}
	flagOut := flags.String("o", "", "write the report to `file` instead of dir/"+runset.AnalysisFile)
	flagDB := flags.String("db", "", "save the run's metrics in the database `dsn`")
	flagVerbose := flags.Bool("v", false, "warn about missing log files")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errUsage
	}
	dir := flags.Arg(0)

	l := runset.Loader{
		Warn: func(format string, args ...interface{}) {
			if *flagVerbose {
				fmt.Fprintf(wErr, "warning: "+format+"\n", args...)
			}
		},
	}
	run, err := l.Load(dir)
	if err != nil {
		return err
	}
	run.Label = filepath.Base(filepath.Clean(dir))

	var buf bytes.Buffer
	if err := report.FormatRun(&buf, run); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	out := *flagOut
	if out == "" {
		out = filepath.Join(dir, runset.AnalysisFile)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0666); err != nil {
		return err
	}
	fmt.Fprintf(wErr, "report written to %s\n", out)

	if *flagDB != "" {
		db, err := store.Open(*flagDB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		scenario := runset.ScenarioName(run.Label)
		if _, err := db.InsertRun(context.Background(), scenario, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(wErr, "run saved under scenario %s\n", scenario)
	}
	return nil
}
