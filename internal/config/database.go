package config

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/Kerhoff/cali/internal/models"
	"github.com/Kerhoff/cali/migrations"
)

// Supported database/sql driver names. They double as the migration
// directory names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database holds database connection and configuration
type Database struct {
	*sql.DB
	Driver   string
	Location string
	logger   logrus.FieldLogger
}

// DriverFor picks the driver for a database URL. Postgres URLs select lib/pq,
// everything else is treated as a SQLite file.
func DriverFor(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// NewDatabase creates a new database connection. Every failure is reported
// as models.ErrStorageUnavailable.
func NewDatabase(databaseURL string, logger logrus.FieldLogger) (*Database, error) {
	driver := DriverFor(databaseURL)

	if driver == DriverSQLite {
		if err := ensureDir(databaseURL); err != nil {
			return nil, fmt.Errorf("%w: failed to create database directory: %w", models.ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", models.ErrStorageUnavailable, err)
	}

	// SQLite allows a single writer; one connection keeps pragmas and
	// in-memory databases stable.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", models.ErrStorageUnavailable, err)
	}

	if driver == DriverSQLite {
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: failed to configure database: %w", models.ErrStorageUnavailable, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"driver":   driver,
		"location": redact(databaseURL),
	}).Debug("Database connection established")

	return &Database{
		DB:       db,
		Driver:   driver,
		Location: databaseURL,
		logger:   logger,
	}, nil
}

// Migrate runs the embedded schema migrations. It is idempotent.
func (d *Database) Migrate() error {
	src, err := iofs.New(migrations.FS, d.Driver)
	if err != nil {
		return fmt.Errorf("%w: failed to load migrations: %w", models.ErrStorageUnavailable, err)
	}

	var driver database.Driver
	switch d.Driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(d.DB, &postgres.Config{})
	default:
		driver, err = sqlite.WithInstance(d.DB, &sqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("%w: failed to create migration driver: %w", models.ErrStorageUnavailable, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, d.Driver, driver)
	if err != nil {
		return fmt.Errorf("%w: failed to create migration instance: %w", models.ErrStorageUnavailable, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: failed to run migrations: %w", models.ErrStorageUnavailable, err)
	}

	d.logger.Debug("Database migrations completed")
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// ensureDir creates the parent directory of a plain SQLite file path.
func ensureDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// redact hides the password of a Postgres URL in log output.
func redact(databaseURL string) string {
	at := strings.LastIndex(databaseURL, "@")
	scheme := strings.Index(databaseURL, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return databaseURL
	}
	creds := databaseURL[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		creds = creds[:colon] + ":xxxxx"
	}
	return databaseURL[:scheme+3] + creds + databaseURL[at:]
}
