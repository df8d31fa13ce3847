package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hookdash/internal/platform/config"
)

// Open connects to the SQLite event store. WAL mode keeps the ingest
// path from blocking dashboard reads.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.Path
	if dsn != ":memory:" && !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
