//go:build integration
// +build integration

package hrschema_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"hrschema/pkg/hr"
	"hrschema/pkg/migration"
	"hrschema/pkg/runtime"
	"hrschema/pkg/schema"
	"hrschema/pkg/store"
)

// setupTestDB creates a PostgreSQL container and returns connection details
func setupTestDB(t *testing.T) (string, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("hrtest"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return connStr, cleanup
}

func hrMigration(t *testing.T) migration.Migration {
	t.Helper()

	tables, err := hr.Tables()
	if err != nil {
		t.Fatalf("Failed to build HR metadata: %v", err)
	}
	s := &migration.Schema{
		Tables:    tables,
		Sequences: hr.Sequences(),
		Views:     []schema.ViewMetadata{hr.View()},
	}

	up, down := migration.NewPlanner().GenerateSchema(s)
	return migration.Migration{
		Version: "20240101000000",
		Name:    "create_hr_schema",
		UpSQL:   up,
		DownSQL: down,
	}
}

// migrateUp applies the full HR schema through the executor.
func migrateUp(t *testing.T, pool *pgxpool.Pool) migration.Migration {
	t.Helper()
	ctx := context.Background()

	executor := migration.NewExecutor(pool)
	if err := executor.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize migrations: %v", err)
	}

	mig := hrMigration(t)
	if err := executor.Apply(ctx, mig, false); err != nil {
		t.Fatalf("Failed to apply HR schema: %v", err)
	}
	return mig
}

func TestIntegration_MigrateUpAndVerify(t *testing.T) {
	connStr, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	migrateUp(t, pool)

	// The verifier must find no drift on a freshly migrated database.
	tables, err := hr.Tables()
	if err != nil {
		t.Fatalf("Failed to build HR metadata: %v", err)
	}
	verifier := migration.NewVerifier(pool)
	findings, err := verifier.Verify(ctx, &migration.Schema{
		Tables:    tables,
		Sequences: hr.Sequences(),
		Views:     []schema.ViewMetadata{hr.View()},
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	for _, f := range findings {
		t.Errorf("unexpected drift: %s", f)
	}

	// Sequences start at their declared values.
	var next int64
	if err := pool.QueryRow(ctx, "SELECT nextval('locations_seq')").Scan(&next); err != nil {
		t.Fatalf("nextval failed: %v", err)
	}
	if next != 3300 {
		t.Errorf("expected locations_seq to start at 3300, got %d", next)
	}
}

func TestIntegration_MigrateIsIdempotentAcrossRecord(t *testing.T) {
	connStr, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	mig := migrateUp(t, pool)

	executor := migration.NewExecutor(pool)
	if err := executor.Apply(ctx, mig, false); err == nil {
		t.Error("expected error applying an already applied migration")
	}

	applied, err := executor.GetAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("GetAppliedMigrations failed: %v", err)
	}
	if len(applied) != 1 {
		t.Errorf("expected 1 applied migration, got %d", len(applied))
	}
}

func TestIntegration_SeedAndConstraints(t *testing.T) {
	connStr, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	migrateUp(t, pool)

	db := runtime.NewDB(pool)
	st := store.New(db)

	if err := st.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	t.Run("row counts", func(t *testing.T) {
		counts := map[string]int64{
			"regions":     4,
			"countries":   6,
			"locations":   5,
			"jobs":        7,
			"departments": 4,
			"employees":   9,
			"job_history": 3,
		}
		for table, want := range counts {
			got, err := st.CountRows(ctx, table)
			if err != nil {
				t.Fatalf("CountRows(%s) failed: %v", table, err)
			}
			if got != want {
				t.Errorf("%s: expected %d rows, got %d", table, want, got)
			}
		}
	})

	t.Run("non-positive salary rejected", func(t *testing.T) {
		bad := hr.SampleEmployees()[0]
		bad.EmployeeID = 999
		bad.Email = "XBADSAL"
		zero := 0.0
		bad.Salary = &zero

		err := st.InsertEmployee(ctx, bad)
		if !errors.Is(err, runtime.ErrCheckViolation) {
			t.Errorf("expected check violation, got %v", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := hr.SampleEmployees()[0]
		dup.EmployeeID = 998

		err := st.InsertEmployee(ctx, dup)
		if !errors.Is(err, runtime.ErrDuplicateKey) {
			t.Errorf("expected duplicate key, got %v", err)
		}
	})

	t.Run("dangling job reference rejected", func(t *testing.T) {
		bad := hr.SampleEmployees()[0]
		bad.EmployeeID = 997
		bad.Email = "XBADJOB"
		bad.JobID = "NO_SUCH"

		err := st.InsertEmployee(ctx, bad)
		if !errors.Is(err, runtime.ErrForeignKeyViolation) {
			t.Errorf("expected foreign key violation, got %v", err)
		}
	})

	t.Run("inverted history interval rejected", func(t *testing.T) {
		bad := hr.JobHistory{
			EmployeeID: 100,
			StartDate:  time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC),
			JobID:      "AD_PRES",
		}

		err := st.InsertJobHistory(ctx, bad)
		if !errors.Is(err, runtime.ErrCheckViolation) {
			t.Errorf("expected check violation, got %v", err)
		}
	})

	t.Run("missing last name rejected", func(t *testing.T) {
		// Empty string satisfies NOT NULL; a NULL insert must not.
		_, err := db.Exec(ctx, `
			INSERT INTO employees (employee_id, last_name, email, hire_date, job_id)
			VALUES ($1, NULL, $2, $3, $4)`,
			996, "XNONAME", time.Now(), "AD_PRES")
		if !errors.Is(err, runtime.ErrNotNullViolation) {
			t.Errorf("expected not null violation, got %v", err)
		}
	})
}

func TestIntegration_EmployeeDetailsView(t *testing.T) {
	connStr, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	migrateUp(t, pool)

	db := runtime.NewDB(pool)
	st := store.New(db)
	if err := st.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// All nine sample employees belong to fully linked departments.
	details, err := st.EmployeeDetails(ctx)
	if err != nil {
		t.Fatalf("EmployeeDetails failed: %v", err)
	}
	if len(details) != 9 {
		t.Fatalf("expected 9 view rows, got %d", len(details))
	}

	king, err := st.EmployeeDetailsByID(ctx, 100)
	if err != nil {
		t.Fatalf("EmployeeDetailsByID failed: %v", err)
	}
	if king.LastName != "King" || king.DepartmentName != "Executive" {
		t.Errorf("unexpected row for employee 100: %+v", king)
	}
	if king.City != "Seattle" || king.CountryName != "United States of America" {
		t.Errorf("unexpected location for employee 100: %+v", king)
	}
	if king.RegionName != "Americas" {
		t.Errorf("unexpected region for employee 100: %+v", king)
	}

	// Detaching a department from its location removes its employees from
	// the view; inner joins drop unresolvable rows.
	if err := st.SetDepartmentLocation(ctx, 90, nil); err != nil {
		t.Fatalf("SetDepartmentLocation failed: %v", err)
	}

	if _, err := st.EmployeeDetailsByID(ctx, 100); !errors.Is(err, runtime.ErrNotFound) {
		t.Errorf("expected employee 100 to vanish from the view, got %v", err)
	}

	details, err = st.EmployeeDetails(ctx)
	if err != nil {
		t.Fatalf("EmployeeDetails failed: %v", err)
	}
	if len(details) != 7 {
		t.Errorf("expected 7 view rows after detaching Executive, got %d", len(details))
	}
}

func TestIntegration_FailedMigrationRecorded(t *testing.T) {
	connStr, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	executor := migration.NewExecutor(pool)
	if err := executor.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize migrations: %v", err)
	}

	broken := migration.Migration{
		Version: "20240101000001",
		Name:    "broken_schema",
		UpSQL:   "CREATE TABLE broken (id nonexistent_type);",
	}
	if err := executor.Apply(ctx, broken, false); err == nil {
		t.Fatal("expected apply of a broken migration to fail")
	}

	// The failure survives the rolled-back transaction as a tracked record.
	records, err := executor.GetAllMigrations(ctx)
	if err != nil {
		t.Fatalf("GetAllMigrations failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 migration record, got %d", len(records))
	}
	if records[0].Status != migration.StatusFailed {
		t.Errorf("expected status %q, got %q", migration.StatusFailed, records[0].Status)
	}
	if records[0].Error == nil || !strings.Contains(*records[0].Error, "statement 1") {
		t.Errorf("expected failing statement in error, got %v", records[0].Error)
	}

	applied, err := executor.GetAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("GetAppliedMigrations failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected no applied migrations, got %d", len(applied))
	}

	// A corrected retry replaces the failure record.
	fixed := broken
	fixed.UpSQL = "CREATE TABLE broken (id integer);"
	if err := executor.Apply(ctx, fixed, false); err != nil {
		t.Fatalf("Failed to apply corrected migration: %v", err)
	}

	records, err = executor.GetAllMigrations(ctx)
	if err != nil {
		t.Fatalf("GetAllMigrations failed: %v", err)
	}
	if len(records) != 1 || records[0].Status != migration.StatusApplied {
		t.Errorf("expected a single applied record, got %+v", records)
	}
	if records[0].Error != nil {
		t.Errorf("expected error cleared after retry, got %q", *records[0].Error)
	}
}

func TestIntegration_Rollback(t *testing.T) {
	connStr, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	// A database that has never migrated has nothing to roll back.
	executor := migration.NewExecutor(pool)
	if err := executor.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize migrations: %v", err)
	}
	fresh, err := executor.GetAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("GetAppliedMigrations failed: %v", err)
	}
	if len(fresh) != 0 {
		t.Fatalf("expected no applied migrations on a fresh database, got %d", len(fresh))
	}

	mig := migrateUp(t, pool)

	if err := executor.Rollback(ctx, mig, false); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	// Nothing of the schema survives the down migration.
	var count int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		  AND table_name != 'schema_migrations'
	`).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count tables: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 tables after rollback, got %d", count)
	}

	err = pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM information_schema.views WHERE table_schema = 'public'",
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count views: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 views after rollback, got %d", count)
	}

	applied, err := executor.GetAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("GetAppliedMigrations failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected no applied migrations after rollback, got %d", len(applied))
	}
}
