// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mysql provides the mysql driver for store.OpenSQL, including
// connections to Cloud SQL instances through the "cloudsql" network.
package mysql

import (
	"database/sql"
	"time"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/go-sql-driver/mysql"

	"github.com/j0nem/multicast-performance/store"
)

// maxConnLifetime is below the server's default wait_timeout.
const maxConnLifetime = 5 * time.Minute

func init() {
	store.RegisterOpenHook("mysql", func(db *sql.DB) error {
		db.SetConnMaxLifetime(maxConnLifetime)
		return nil
	})
}

// CloudDSN returns the data source name of database dbName on the
// Cloud SQL instance named "project:region:instance". An empty dbName
// connects without selecting a database.
func CloudDSN(user, instance, dbName string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Net = "cloudsql"
	cfg.Addr = instance
	cfg.DBName = dbName
	return cfg.FormatDSN()
}
