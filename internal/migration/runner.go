package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/amirk1998/moodlog/internal/database"
)

// Migration is one versioned, idempotent schema transformation. Run returns
// the number of rows it changed.
type Migration struct {
	Version int
	Name    string
	Run     func(tx *sql.Tx) (int, error)
}

// Result summarizes one Apply pass.
type Result struct {
	Applied     int
	Skipped     int
	RowsChanged int
	Failed      *Failure
}

// Failure records the migration step that could not complete.
type Failure struct {
	Version int
	Name    string
	Err     error
}

type Runner struct {
	db         *sql.DB
	tm         *database.TransactionManager
	migrations []Migration
}

// NewRunner creates a migration runner with the built-in migration chain
// registered in version order.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{
		db:         db,
		tm:         database.NewTransactionManager(db),
		migrations: builtinMigrations(),
	}
}

// Apply runs every unapplied migration in version order. Each step executes
// inside its own transaction and records its version on success, so a second
// pass over the same database is a no-op reporting zero applied steps.
//
// A step failure is logged and stops the chain (later steps assume the
// earlier shape), but Apply itself does not return an error: the app keeps
// operating on whatever data shape is currently readable. A migration must
// never delete data it cannot fully transform, and the per-step transaction
// guarantees that.
func (r *Runner) Apply(ctx context.Context) Result {
	result := Result{}

	if err := r.ensureVersionTable(); err != nil {
		log.Printf("[Migration] cannot initialize version table: %v", err)
		result.Failed = &Failure{Err: err}
		return result
	}

	applied, err := r.appliedVersions()
	if err != nil {
		log.Printf("[Migration] cannot read applied versions: %v", err)
		result.Failed = &Failure{Err: err}
		return result
	}

	for _, m := range r.migrations {
		if applied[m.Version] {
			result.Skipped++
			continue
		}

		var changed int
		err := r.tm.Execute(ctx, func(tx *sql.Tx) error {
			n, runErr := m.Run(tx)
			if runErr != nil {
				return runErr
			}
			changed = n
			_, recErr := tx.Exec(
				"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
				m.Version, m.Name,
			)
			return recErr
		})
		if err != nil {
			log.Printf("[Migration] step %d (%s) failed, continuing with current data shape: %v", m.Version, m.Name, err)
			result.Failed = &Failure{Version: m.Version, Name: m.Name, Err: err}
			return result
		}

		result.Applied++
		result.RowsChanged += changed
		log.Printf("[Migration] applied %d (%s), %d rows changed", m.Version, m.Name, changed)
	}

	return result
}

func (r *Runner) ensureVersionTable() error {
	schema := `
    CREATE TABLE IF NOT EXISTS schema_migrations (
        version INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        applied_at DATETIME NOT NULL
    );
    `
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func (r *Runner) appliedVersions() (map[int]bool, error) {
	rows, err := r.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()

	versions := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions[v] = true
	}
	return versions, rows.Err()
}
