package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the SQLite database at path and applies
// the connection pragmas. Callers own the returned handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	errb := oops.In("database").With("database_path", path)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errb.With("context", "failed to create database directory").Wrap(err)
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path))
	if err != nil {
		return nil, errb.With("context", "failed to open database").Wrap(err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(time.Hour)

	if _, err := db.ExecContext(ctx, `
		PRAGMA busy_timeout = 5000;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
	`); err != nil {
		_ = db.Close()
		return nil, errb.With("context", "failed to set pragmas").Wrap(err)
	}

	return db, nil
}
