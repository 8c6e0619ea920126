// Package migration turns registered schema metadata into versioned SQL
// migrations and applies them to PostgreSQL.
package migration

import "time"

// Migration represents a database migration.
type Migration struct {
	Version   string    // Version/timestamp (e.g., "20240101120000")
	Name      string    // Migration name (e.g., "create_hr_schema")
	UpSQL     string    // SQL for applying the migration
	DownSQL   string    // SQL for rolling back the migration
	AppliedAt time.Time // When the migration was applied
}

// File represents a migration file pair on disk.
type File struct {
	Version  string
	Name     string
	UpPath   string // Path to .up.sql file
	DownPath string // Path to .down.sql file
}

// Status represents the state of a migration.
type Status string

const (
	// StatusPending means the migration has not been applied.
	StatusPending Status = "pending"
	// StatusApplied means the migration has been applied.
	StatusApplied Status = "applied"
	// StatusFailed means the migration failed to apply.
	StatusFailed Status = "failed"
)

// Record represents a migration in the tracking table.
type Record struct {
	Version   string
	Name      string
	Status    Status
	AppliedAt *time.Time
	Error     *string
}

// GenerateVersion generates a timestamp-based version string.
// Format: YYYYMMDDHHmmss (e.g., "20240101120000")
func GenerateVersion() string {
	return time.Now().Format("20060102150405")
}

// GenerateFileName generates a migration filename.
// Format: {version}_{name}.{up|down}.sql
func GenerateFileName(version, name, direction string) string {
	return version + "_" + name + "." + direction + ".sql"
}
