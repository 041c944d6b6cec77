// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store persists analyzed runs in a SQL database, so runs can
// be compared and aggregated again without their monitoring logs.
//
// A run is stored with its scenario, label, test configuration and
// scalar metrics. Per-sample series are not stored.
package store

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/net/context"

	"github.com/j0nem/multicast-performance/runstat"
)

// DB is a database of runs. It's safe for concurrent use by multiple
// goroutines.
type DB struct {
	sql *sql.DB // underlying database connection

	insertRun    *sql.Stmt
	insertScalar *sql.Stmt
}

// OpenSQL opens a DB backed by a SQL database. The parameters are the
// same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines receive MySQL syntax.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Open opens a DB named by dsn, which has the form "driver:source".
// A dsn without a known driver prefix names a sqlite3 database file.
func Open(dsn string) (*DB, error) {
	driverName, source := "sqlite3", dsn
	if i := strings.Index(dsn, ":"); i > 0 {
		switch dsn[:i] {
		case "sqlite3", "mysql":
			driverName, source = dsn[:i], dsn[i+1:]
		}
	}
	return OpenSQL(driverName, source)
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Scenario VARCHAR(255),
	Label VARCHAR(1024),
	Config TEXT
);
CREATE TABLE IF NOT EXISTS Scalars (
	RunID BIGINT UNSIGNED,
	Name VARCHAR(255),
	Value DOUBLE,
	PRIMARY KEY (RunID, Name),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunsScenario ON Runs(Scenario);
{{else}}
CREATE INDEX RunsScenario ON Runs(Scenario);
{{end}}
`))

func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			if driverName == "mysql" && strings.Contains(err.Error(), "Duplicate key name") {
				// MySQL has no CREATE INDEX IF NOT EXISTS.
				continue
			}
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Scenario, Label, Config) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertScalar, err = db.sql.Prepare("INSERT INTO Scalars(RunID, Name, Value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// InsertRun stores run under scenario and returns the new run's ID.
func (db *DB) InsertRun(ctx context.Context, scenario string, run *runstat.Run) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, scenario, run.Label, run.Config)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	insert := tx.StmtContext(ctx, db.insertScalar)
	for _, name := range run.ScalarNames() {
		if _, err := insert.ExecContext(ctx, id, name, run.Scalars[name]); err != nil {
			return 0, fmt.Errorf("insert %s: %w", name, err)
		}
	}
	return id, nil
}

// Scenarios returns the names of the stored scenarios in sorted order.
func (db *DB) Scenarios(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT DISTINCT Scenario FROM Runs ORDER BY Scenario")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Runs returns the runs stored under scenario in insertion order. The
// runs have scalars but no series or entities.
func (db *DB) Runs(ctx context.Context, scenario string) ([]*runstat.Run, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT r.RunID, r.Label, r.Config, s.Name, s.Value
FROM Runs r LEFT JOIN Scalars s ON s.RunID = r.RunID
WHERE r.Scenario = ?
ORDER BY r.RunID`, scenario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*runstat.Run)
	var ids []int64
	for rows.Next() {
		var (
			id            int64
			label, config string
			name          sql.NullString
			value         sql.NullFloat64
		)
		if err := rows.Scan(&id, &label, &config, &name, &value); err != nil {
			return nil, err
		}
		run := byID[id]
		if run == nil {
			run = &runstat.Run{Label: label, Config: config, Scalars: make(map[string]float64)}
			byID[id] = run
			ids = append(ids, id)
		}
		if name.Valid && value.Valid {
			run.Scalars[name.String] = value.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	runs := make([]*runstat.Run, len(ids))
	for i, id := range ids {
		runs[i] = byID[id]
	}
	return runs, nil
}

// CountRuns returns the number of stored runs.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertScalar} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
