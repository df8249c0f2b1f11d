package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/migrations"

	"database/sql"
)

// Driver names accepted by [NewConnect]. SQLite is the on-device default;
// Postgres serves setups where the agent's store is hosted elsewhere.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DB wraps the open database handle together with the driver name (needed to
// select the migration dialect) and the driver-specific error classifier.
type DB struct {
	*sql.DB

	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.DSN, choosing the driver from
// the DSN shape: postgres URLs and key=value conninfo strings go to pgx,
// anything else is treated as a SQLite file path.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch DriverForDSN(cfg.DSN) {
	case DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

// DriverForDSN infers the sql driver name from the DSN shape.
func DriverForDSN(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Migrate applies all pending schema migrations embedded in the binary.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, db.driver); err != nil {
		return fmt.Errorf("migrate %s database: %w", db.driver, err)
	}
	return nil
}

// Classify reports whether err is worth retrying for this connection's driver.
func (db *DB) Classify(err error) ErrorClassification {
	return db.errorClassificator.Classify(err)
}
