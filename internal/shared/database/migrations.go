package database

import (
	"database/sql"
	"embed"
	"errors"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"
)

//go:embed migrations/*.sql
var fs embed.FS

// Migrate brings the schema up to date on an open handle. The migrate
// instance is not closed because that would close db too.
func Migrate(db *sql.DB, logger *slog.Logger) error {
	errb := oops.In("database").With("context", "migrations")

	src, err := iofs.New(fs, "migrations")
	if err != nil {
		return errb.Wrap(err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return errb.Wrap(err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return errb.Wrap(err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errb.Wrap(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errb.Wrap(err)
	}
	logger.Debug("Database migrated", "version", version, "dirty", dirty)

	return nil
}
