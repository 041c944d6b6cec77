// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Runagg averages the analysis reports of repeated test runs.
//
// Usage:
//
//	runagg [-db dsn] [base-dir]
//
// Runagg reads the server_analysis.txt report written by runstat in
// every run directory directly under base-dir (default "results").
// Run directories named "<scenario>_iterN_..." are grouped by
// scenario, and runagg prints the mean of each metric over the
// iterations of each scenario.
//
// With -db, runagg instead reads the runs saved by runstat -db and
// ignores base-dir.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/j0nem/multicast-performance/report"
	"github.com/j0nem/multicast-performance/runset"
	"github.com/j0nem/multicast-performance/store"
	_ "github.com/j0nem/multicast-performance/store/mysql"
	_ "github.com/j0nem/multicast-performance/store/sqlite3"
)

var exit = os.Exit // replaced during testing

var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("runagg: ")
	log.SetFlags(0)
	if err := runagg(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func runagg(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("runagg", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: runagg [flags] [base-dir]\n")
		flags.PrintDefaults()
		exit(2)
	}
	flagDB := flags.String("db", "", "read runs from database `dsn` instead of base-dir")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return errUsage
	}

	var scenarios []*runset.Scenario
	if *flagDB != "" {
		var err error
		scenarios, err = loadDB(context.Background(), *flagDB)
		if err != nil {
			return err
		}
	} else {
		base := "results"
		if flags.NArg() == 1 {
			base = flags.Arg(0)
		}
		l := &runset.Loader{
			Warn: func(format string, args ...interface{}) {
				fmt.Fprintf(wErr, "warning: "+format+"\n", args...)
			},
		}
		var err error
		scenarios, err = l.Group(base)
		if err != nil {
			return err
		}
	}
	if len(scenarios) == 0 {
		return errors.New("no analyzed runs found")
	}
	return report.FormatScenarios(w, scenarios)
}

func loadDB(ctx context.Context, dsn string) ([]*runset.Scenario, error) {
	db, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	names, err := db.Scenarios(ctx)
	if err != nil {
		return nil, err
	}
	var scenarios []*runset.Scenario
	for _, name := range names {
		runs, err := db.Runs(ctx, name)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, &runset.Scenario{Name: name, Runs: runs})
	}
	return scenarios, nil
}
