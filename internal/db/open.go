package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN keeps the whole database in process memory. cache=shared lets
// every pooled connection see the same database instead of each getting an
// empty private one.
const MemoryDSN = "file:blucentia?mode=memory&cache=shared"

// Open opens a SQLite database and applies the schema. An in-memory database
// vanishes once its last connection closes, so the pool is pinned to a single
// connection kept open for the process lifetime.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	d, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	d.SetMaxOpenConns(1)
	if err := d.Ping(); err != nil {
		d.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := RunMigrations(d); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}
