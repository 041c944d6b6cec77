// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storetest provides a test database for packages that use
// store.
package storetest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"testing"

	"github.com/j0nem/multicast-performance/store"
	"github.com/j0nem/multicast-performance/store/mysql"
	_ "github.com/j0nem/multicast-performance/store/sqlite3"
)

var cloud = flag.Bool("cloud", false, "connect to Cloud SQL database instead of in-memory SQLite")
var cloudsql = flag.String("cloudsql", "", "name of Cloud SQL `instance` to run tests on")

// createEmptyCloudDB makes a new, empty database for the test.
func createEmptyCloudDB(t *testing.T) (dsn string, cleanup func()) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	name := "runs-test-" + base64.RawURLEncoding.EncodeToString(buf)
	db, err := sql.Open("mysql", mysql.CloudDSN("root", *cloudsql, ""))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}
	t.Logf("Using database %q", name)

	return mysql.CloudDSN("root", *cloudsql, name), func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewDB returns an empty test database, either an in-memory sqlite3
// database or a Cloud SQL database depending on the -cloud flag. The
// database is closed when the test finishes.
func NewDB(t *testing.T) *store.DB {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *cloud {
		if *cloudsql == "" {
			t.Skip("-cloud requires -cloudsql")
		}
		var cleanup func()
		driverName = "mysql"
		dataSourceName, cleanup = createEmptyCloudDB(t)
		t.Cleanup(cleanup)
	}
	d, err := store.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	n, err := d.CountRuns(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("found %d row(s) in Runs, want 0", n)
	}
	return d
}
