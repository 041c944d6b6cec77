// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Runcompare compares the server resource usage of two groups of test
// runs, normally multicast runs against unicast runs.
//
// Usage:
//
//	runcompare [flags] treatment-pattern baseline-pattern
//
// Each pattern is a glob matching run directories, for example
// "results/multicast_12_clients_iter*". Every run is analyzed as by
// runstat; the runs of each group are then reduced to the mean and
// standard deviation of each metric. Runs that did not measure a
// metric, or measured zero, do not contribute to it.
//
// Runcompare prints a table per resource group (CPU, memory and
// network) with both groups' statistics and the improvement of the
// treatment relative to the baseline. A positive improvement means the
// treatment used less of the resource. The tables are followed by a
// summary verdict per group.
//
// It also writes two bar charts, cpu_memory_comparison.png and
// network_comparison.png, along with a copy of the report, to the
// directory named by -out, or to the Google Cloud Storage bucket named
// by -gcs.
//
// With -db, the patterns instead name scenarios whose runs were saved
// by runstat -db.
//
// The flags are:
//
//	-out dir
//		write charts and the report to dir (default ".")
//	-gcs bucket
//		write charts and the report to the named GCS bucket
//	-html
//		print the comparison as an HTML page
//	-treatment name, -baseline name
//		names of the two groups (default "Multicast", "Unicast")
//	-db dsn
//		read runs from the database dsn
//	-v
//		warn about missing log files
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

	"github.com/j0nem/multicast-performance/internal/fs"
	"github.com/j0nem/multicast-performance/internal/fs/gcs"
	"github.com/j0nem/multicast-performance/internal/fs/local"
	"github.com/j0nem/multicast-performance/report"
	"github.com/j0nem/multicast-performance/runset"
	"github.com/j0nem/multicast-performance/runstat"
	"github.com/j0nem/multicast-performance/store"
	_ "github.com/j0nem/multicast-performance/store/mysql"
	_ "github.com/j0nem/multicast-performance/store/sqlite3"
)

var exit = os.Exit // replaced during testing

var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("runcompare: ")
	log.SetFlags(0)
	if err := runcompare(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func runcompare(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("runcompare", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: runcompare [flags] treatment-pattern baseline-pattern\n")
		flags.PrintDefaults()
		exit(2)
	}
	flagOut := flags.String("out", ".", "write charts and report to `dir`")
	flagGCS := flags.String("gcs", "", "write charts and report to GCS `bucket` instead of -out")
	flagHTML := flags.Bool("html", false, "print the comparison as an HTML page")
	flagTreatment := flags.String("treatment", "Multicast", "`name` of the treatment group")
	flagBaseline := flags.String("baseline", "Unicast", "`name` of the baseline group")
	flagDB := flags.String("db", "", "read runs of the named scenarios from database `dsn`")
	flagVerbose := flags.Bool("v", false, "warn about missing log files")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return errUsage
	}
	ctx := context.Background()

	var load func(pattern string) ([]*runstat.Run, error)
	if *flagDB != "" {
		db, err := store.Open(*flagDB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		load = func(scenario string) ([]*runstat.Run, error) {
			runs, err := db.Runs(ctx, scenario)
			if err == nil && len(runs) == 0 {
				err = fmt.Errorf("no stored runs for scenario %q", scenario)
			}
			return runs, err
		}
	} else {
		l := &runset.Loader{
			Warn: func(format string, args ...interface{}) {
				if *flagVerbose {
					fmt.Fprintf(wErr, "warning: "+format+"\n", args...)
				}
			},
		}
		load = func(pattern string) ([]*runstat.Run, error) {
			dirs, err := (&runset.Dirs{Patterns: []string{pattern}}).Expand()
			if err != nil {
				return nil, err
			}
			return l.LoadAll(dirs)
		}
	}

	treatment, err := load(flags.Arg(0))
	if err != nil {
		return err
	}
	baseline, err := load(flags.Arg(1))
	if err != nil {
		return err
	}
	p := &report.Pair{
		TreatmentName: *flagTreatment,
		BaselineName:  *flagBaseline,
		TreatmentRuns: len(treatment),
		BaselineRuns:  len(baseline),
		Treatment:     runstat.AggregateAll(treatment),
		Baseline:      runstat.AggregateAll(baseline),
	}

	var buf bytes.Buffer
	reportName := "comparison.txt"
	if *flagHTML {
		reportName = "comparison.html"
		err = report.FormatHTML(&buf, p)
	} else {
		err = report.FormatComparison(&buf, p)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	var fsys fs.FS
	if *flagGCS != "" {
		fsys, err = gcs.NewFS(ctx, *flagGCS)
		if err != nil {
			return fmt.Errorf("open bucket %s: %w", *flagGCS, err)
		}
	} else {
		fsys = local.NewFS(*flagOut)
	}
	return publish(ctx, fsys, wErr, p, reportName, buf.Bytes())
}

// publish writes the report and charts of p to fsys.
func publish(ctx context.Context, fsys fs.FS, wErr io.Writer, p *report.Pair, reportName string, reportData []byte) error {
	meta := map[string]string{
		"treatment": p.TreatmentName,
		"baseline":  p.BaselineName,
	}
	files := []struct {
		name  string
		write func(io.Writer, *report.Pair) error
	}{
		{report.CPUMemoryChartFile, report.CPUMemoryChart},
		{report.NetworkChartFile, report.NetworkChart},
	}
	for _, f := range files {
		var buf bytes.Buffer
		if err := f.write(&buf, p); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		if err := fs.WriteFile(ctx, fsys, f.name, meta, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(wErr, "wrote %s\n", f.name)
	}
	if err := fs.WriteFile(ctx, fsys, reportName, meta, reportData); err != nil {
		return err
	}
	fmt.Fprintf(wErr, "wrote %s\n", reportName)
	return nil
}
