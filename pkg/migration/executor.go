package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Executor executes and tracks database migrations.
type Executor struct {
	pool   *pgxpool.Pool
	lockID int64 // PostgreSQL advisory lock ID
	log    zerolog.Logger
}

// NewExecutor creates a new migration executor.
func NewExecutor(pool *pgxpool.Pool) *Executor {
	return &Executor{
		pool:   pool,
		lockID: 4217850355, // arbitrary but stable across binaries
		log:    zerolog.Nop(),
	}
}

// WithLockID sets a custom advisory lock ID.
func (e *Executor) WithLockID(lockID int64) *Executor {
	e.lockID = lockID
	return e
}

// WithLogger sets a logger for statement-level progress.
func (e *Executor) WithLogger(log zerolog.Logger) *Executor {
	e.log = log
	return e
}

// Initialize creates the schema_migrations table if it doesn't exist.
func (e *Executor) Initialize(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(14) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			applied_at TIMESTAMP,
			error TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_schema_migrations_status
		ON schema_migrations(status);
	`

	if _, err := e.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// Lock acquires an advisory lock to prevent concurrent migrations.
func (e *Executor) Lock(ctx context.Context) error {
	if _, err := e.pool.Exec(ctx, "SELECT pg_advisory_lock($1)", e.lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	return nil
}

// Unlock releases the advisory lock.
func (e *Executor) Unlock(ctx context.Context) error {
	var released bool
	err := e.pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", e.lockID).Scan(&released)
	if err != nil {
		return fmt.Errorf("failed to release migration lock: %w", err)
	}
	if !released {
		return fmt.Errorf("lock was not held")
	}
	return nil
}

// GetAppliedMigrations returns all migrations that have been applied.
func (e *Executor) GetAppliedMigrations(ctx context.Context) ([]Record, error) {
	return e.queryRecords(ctx, `
		SELECT version, name, status, applied_at, error
		FROM schema_migrations
		WHERE status = 'applied'
		ORDER BY version ASC
	`)
}

// GetAllMigrations returns all migration records.
func (e *Executor) GetAllMigrations(ctx context.Context) ([]Record, error) {
	return e.queryRecords(ctx, `
		SELECT version, name, status, applied_at, error
		FROM schema_migrations
		ORDER BY version ASC
	`)
}

func (e *Executor) queryRecords(ctx context.Context, query string) ([]Record, error) {
	rows, err := e.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.Version, &record.Name, &record.Status, &record.AppliedAt, &record.Error); err != nil {
			return nil, fmt.Errorf("failed to scan migration record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// IsMigrationApplied checks if a specific migration has been applied.
func (e *Executor) IsMigrationApplied(ctx context.Context, version string) (bool, error) {
	var count int
	err := e.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = $1 AND status = 'applied'",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Apply executes a migration's up SQL in a single transaction.
func (e *Executor) Apply(ctx context.Context, migration Migration, dryRun bool) error {
	applied, err := e.IsMigrationApplied(ctx, migration.Version)
	if err != nil {
		return err
	}
	if applied {
		return fmt.Errorf("migration %s is already applied", migration.Version)
	}

	if dryRun {
		e.log.Info().Str("version", migration.Version).Msg("dry run, skipping apply")
		return nil
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, name, status) VALUES ($1, $2, 'pending') ON CONFLICT (version) DO UPDATE SET status = 'pending'",
		migration.Version, migration.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	statements := splitSQL(migration.UpSQL)
	for i, stmt := range statements {
		e.log.Debug().Str("version", migration.Version).Int("statement", i+1).Msg(firstLine(stmt))
		if _, err = tx.Exec(ctx, stmt); err != nil {
			// The pending row rolls back with the transaction, so the
			// failure must be upserted on the pool.
			_ = tx.Rollback(ctx)
			now := time.Now()
			errMsg := fmt.Sprintf("statement %d failed: %v", i+1, err)
			_, _ = e.pool.Exec(ctx,
				`INSERT INTO schema_migrations (version, name, status, error, applied_at)
				 VALUES ($1, $2, 'failed', $3, $4)
				 ON CONFLICT (version) DO UPDATE SET status = 'failed', error = $3, applied_at = $4`,
				migration.Version, migration.Name, errMsg, now,
			)
			return fmt.Errorf("migration failed at statement %d: %w", i+1, err)
		}
	}

	now := time.Now()
	_, err = tx.Exec(ctx,
		"UPDATE schema_migrations SET status = 'applied', applied_at = $1, error = NULL WHERE version = $2",
		now, migration.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update migration status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	e.log.Info().Str("version", migration.Version).Str("name", migration.Name).Msg("migration applied")
	return nil
}

// Rollback executes a migration's down SQL in a single transaction.
func (e *Executor) Rollback(ctx context.Context, migration Migration, dryRun bool) error {
	applied, err := e.IsMigrationApplied(ctx, migration.Version)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("migration %s is not applied", migration.Version)
	}

	if dryRun {
		e.log.Info().Str("version", migration.Version).Msg("dry run, skipping rollback")
		return nil
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	statements := splitSQL(migration.DownSQL)
	for i, stmt := range statements {
		e.log.Debug().Str("version", migration.Version).Int("statement", i+1).Msg(firstLine(stmt))
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("rollback failed at statement %d: %w", i+1, err)
		}
	}

	if _, err = tx.Exec(ctx, "DELETE FROM schema_migrations WHERE version = $1", migration.Version); err != nil {
		return fmt.Errorf("failed to delete migration record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rollback: %w", err)
	}

	e.log.Info().Str("version", migration.Version).Str("name", migration.Name).Msg("migration rolled back")
	return nil
}

// ApplyAll applies all pending migrations in order.
func (e *Executor) ApplyAll(ctx context.Context, migrations []Migration, dryRun bool) error {
	appliedMap := make(map[string]bool)
	applied, err := e.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	for _, m := range applied {
		appliedMap[m.Version] = true
	}

	for _, migration := range migrations {
		if appliedMap[migration.Version] {
			continue
		}
		if err := e.Apply(ctx, migration, dryRun); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
		}
	}
	return nil
}

// RollbackTo rolls back all applied migrations after the target version.
func (e *Executor) RollbackTo(ctx context.Context, targetVersion string, migrations []Migration, dryRun bool) error {
	applied, err := e.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	migrationMap := make(map[string]Migration)
	for _, m := range migrations {
		migrationMap[m.Version] = m
	}

	for i := len(applied) - 1; i >= 0; i-- {
		record := applied[i]
		if record.Version <= targetVersion {
			continue
		}

		migration, exists := migrationMap[record.Version]
		if !exists {
			return fmt.Errorf("migration file not found for version %s", record.Version)
		}
		if err := e.Rollback(ctx, migration, dryRun); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", record.Version, err)
		}
	}
	return nil
}

// GetStatus returns the status of all known migrations.
func (e *Executor) GetStatus(ctx context.Context, migrations []Migration) ([]Record, error) {
	appliedMap := make(map[string]Record)
	applied, err := e.GetAllMigrations(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range applied {
		appliedMap[m.Version] = m
	}

	var records []Record
	for _, migration := range migrations {
		if record, exists := appliedMap[migration.Version]; exists {
			records = append(records, record)
		} else {
			records = append(records, Record{
				Version: migration.Version,
				Name:    migration.Name,
				Status:  StatusPending,
			})
		}
	}
	return records, nil
}

// firstLine returns the first line of a statement for log messages.
func firstLine(stmt string) string {
	if idx := strings.IndexByte(stmt, '\n'); idx != -1 {
		return stmt[:idx]
	}
	return stmt
}

// splitSQL splits a SQL string into individual statements on semicolons,
// skipping comment lines. Semicolons inside single-quoted literals do not
// split: COMMENT ON text routinely contains them.
func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	var cleaned []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var statements []string
	var current strings.Builder
	inLiteral := false
	for _, ch := range strings.Join(cleaned, "\n") {
		switch {
		case ch == '\'':
			inLiteral = !inLiteral
			current.WriteRune(ch)
		case ch == ';' && !inLiteral:
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}
