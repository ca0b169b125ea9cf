package migration

import (
	"context"
	"fmt"

	"evalreport/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the message store schema the hierarchy lookup
// reads. It is idempotent and understands the sqlite and postgres drivers.
type MigrationRunner struct {
	version string
}

var _ Migrator = (*MigrationRunner)(nil)

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createMessageTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create message table", err)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.DatabaseError("failed to create message indexes", err)
	}

	return nil
}

func (r *MigrationRunner) createMessageTable(ctx context.Context, db *sqlx.DB) error {
	switch db.DriverName() {
	case "sqlite", "sqlite3":
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS message (
				id BLOB PRIMARY KEY,
				parent_id BLOB REFERENCES message(id),
				text TEXT
			)
		`)
		return err
	case "postgres":
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS message (
				id BYTEA PRIMARY KEY,
				parent_id BYTEA REFERENCES message(id),
				text TEXT
			)
		`)
		return err
	default:
		return fmt.Errorf("unsupported driver %q", db.DriverName())
	}
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_message_parent_id ON message(parent_id)`)
	return err
}
