package migration

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrschema/pkg/schema"
)

// Verifier checks a live database against the declared schema metadata and
// reports drift. It reads information_schema and pg_catalog only; it never
// modifies the database.
type Verifier struct {
	pool *pgxpool.Pool
}

// NewVerifier creates a new schema verifier.
func NewVerifier(pool *pgxpool.Pool) *Verifier {
	return &Verifier{pool: pool}
}

// Finding describes one discrepancy between the declared and live schemas.
type Finding struct {
	Object string // table, table.column, view, or sequence name
	Detail string
}

func (f Finding) String() string {
	return f.Object + ": " + f.Detail
}

// Verify compares every declared table, view, and sequence against the live
// database. A nil slice means the database matches the declaration.
func (v *Verifier) Verify(ctx context.Context, s *Schema) ([]Finding, error) {
	var findings []Finding

	for _, table := range s.Tables {
		tf, err := v.verifyTable(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to verify table %s: %w", table.Name, err)
		}
		findings = append(findings, tf...)
	}

	for _, view := range s.Views {
		exists, err := v.viewExists(ctx, view.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to verify view %s: %w", view.Name, err)
		}
		if !exists {
			findings = append(findings, Finding{Object: view.Name, Detail: "view does not exist"})
			continue
		}
		vf, err := v.verifyViewColumns(ctx, view)
		if err != nil {
			return nil, fmt.Errorf("failed to verify view %s: %w", view.Name, err)
		}
		findings = append(findings, vf...)
	}

	for _, seq := range s.Sequences {
		exists, err := v.sequenceExists(ctx, seq.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to verify sequence %s: %w", seq.Name, err)
		}
		if !exists {
			findings = append(findings, Finding{Object: seq.Name, Detail: "sequence does not exist"})
		}
	}

	return findings, nil
}

// verifyTable checks existence, columns, nullability, primary key, and
// foreign keys for one table.
func (v *Verifier) verifyTable(ctx context.Context, table *schema.TableMetadata) ([]Finding, error) {
	exists, err := v.tableExists(ctx, table.Name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []Finding{{Object: table.Name, Detail: "table does not exist"}}, nil
	}

	var findings []Finding

	live, err := v.getColumns(ctx, table.Name)
	if err != nil {
		return nil, err
	}
	for _, col := range table.Columns {
		lc, ok := live[col.Name]
		if !ok {
			findings = append(findings, Finding{
				Object: table.Name + "." + col.Name,
				Detail: "column does not exist",
			})
			continue
		}
		if lc.Nullable != col.Nullable {
			findings = append(findings, Finding{
				Object: table.Name + "." + col.Name,
				Detail: fmt.Sprintf("nullable is %v, declared %v", lc.Nullable, col.Nullable),
			})
		}
		if !typesEquivalent(lc.SQLType, col.SQLType) {
			findings = append(findings, Finding{
				Object: table.Name + "." + col.Name,
				Detail: fmt.Sprintf("type is %s, declared %s", lc.SQLType, col.SQLType),
			})
		}
	}

	if table.PrimaryKey != nil {
		pkCols, err := v.getPrimaryKeyColumns(ctx, table.Name)
		if err != nil {
			return nil, err
		}
		if !equalStrings(pkCols, table.PrimaryKey.Columns) {
			findings = append(findings, Finding{
				Object: table.Name,
				Detail: fmt.Sprintf("primary key is (%s), declared (%s)",
					strings.Join(pkCols, ", "), strings.Join(table.PrimaryKey.Columns, ", ")),
			})
		}
	}

	fkNames, err := v.getForeignKeyNames(ctx, table.Name)
	if err != nil {
		return nil, err
	}
	for _, fk := range table.ForeignKeys {
		if !fkNames[fk.Name] {
			findings = append(findings, Finding{
				Object: table.Name,
				Detail: fmt.Sprintf("foreign key %s does not exist", fk.Name),
			})
		}
	}

	idxNames, err := v.getIndexNames(ctx, table.Name)
	if err != nil {
		return nil, err
	}
	for _, idx := range table.Indexes {
		if !idxNames[idx.Name] {
			findings = append(findings, Finding{
				Object: table.Name,
				Detail: fmt.Sprintf("index %s does not exist", idx.Name),
			})
		}
	}

	return findings, nil
}

type liveColumn struct {
	SQLType  string
	Nullable bool
}

func (v *Verifier) tableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := v.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		  AND table_name = $1
	`, name).Scan(&count)
	return count > 0, err
}

func (v *Verifier) viewExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := v.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.views
		WHERE table_schema = 'public' AND table_name = $1
	`, name).Scan(&count)
	return count > 0, err
}

func (v *Verifier) sequenceExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := v.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.sequences
		WHERE sequence_schema = 'public' AND sequence_name = $1
	`, name).Scan(&count)
	return count > 0, err
}

func (v *Verifier) getColumns(ctx context.Context, tableName string) (map[string]liveColumn, error) {
	rows, err := v.pool.Query(ctx, `
		SELECT
			column_name,
			data_type,
			character_maximum_length,
			numeric_precision,
			numeric_scale,
			is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make(map[string]liveColumn)
	for rows.Next() {
		var name, dataType, isNullable string
		var maxLength, precision, scale *int

		if err := rows.Scan(&name, &dataType, &maxLength, &precision, &scale, &isNullable); err != nil {
			return nil, err
		}
		columns[name] = liveColumn{
			SQLType:  buildSQLType(dataType, maxLength, precision, scale),
			Nullable: isNullable == "YES",
		}
	}
	return columns, rows.Err()
}

func (v *Verifier) verifyViewColumns(ctx context.Context, view schema.ViewMetadata) ([]Finding, error) {
	live, err := v.getColumns(ctx, view.Name)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for _, col := range view.Columns {
		if _, ok := live[col]; !ok {
			findings = append(findings, Finding{
				Object: view.Name + "." + col,
				Detail: "view column does not exist",
			})
		}
	}
	return findings, nil
}

func (v *Verifier) getPrimaryKeyColumns(ctx context.Context, tableName string) ([]string, error) {
	var columns []string
	err := v.pool.QueryRow(ctx, `
		SELECT array_agg(kcu.column_name ORDER BY kcu.ordinal_position)
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = 'public'
			AND tc.table_name = $1
			AND tc.constraint_type = 'PRIMARY KEY'
		GROUP BY tc.constraint_name
	`, tableName).Scan(&columns)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return columns, err
}

func (v *Verifier) getForeignKeyNames(ctx context.Context, tableName string) (map[string]bool, error) {
	return v.queryNameSet(ctx, `
		SELECT constraint_name
		FROM information_schema.table_constraints
		WHERE table_schema = 'public'
			AND table_name = $1
			AND constraint_type = 'FOREIGN KEY'
	`, tableName)
}

func (v *Verifier) getIndexNames(ctx context.Context, tableName string) (map[string]bool, error) {
	return v.queryNameSet(ctx, `
		SELECT indexname
		FROM pg_indexes
		WHERE schemaname = 'public' AND tablename = $1
	`, tableName)
}

func (v *Verifier) queryNameSet(ctx context.Context, query, tableName string) (map[string]bool, error) {
	rows, err := v.pool.Query(ctx, query, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}

// buildSQLType reconstructs the declared type spelling from
// information_schema column attributes.
func buildSQLType(dataType string, maxLength, precision, scale *int) string {
	switch dataType {
	case "character varying":
		if maxLength != nil {
			return fmt.Sprintf("varchar(%d)", *maxLength)
		}
		return "varchar"
	case "character":
		if maxLength != nil {
			return fmt.Sprintf("char(%d)", *maxLength)
		}
		return "char"
	case "numeric", "decimal":
		if precision != nil && scale != nil {
			return fmt.Sprintf("numeric(%d,%d)", *precision, *scale)
		}
		return "numeric"
	default:
		return dataType
	}
}

// typesEquivalent compares a live type against a declared type, tolerating
// the aliases PostgreSQL reports (int4 vs integer, date vs date, and
// whitespace inside numeric precision lists).
func typesEquivalent(live, declared string) bool {
	normalize := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		s = strings.ReplaceAll(s, ", ", ",")
		switch s {
		case "int4", "int":
			return "integer"
		case "int8":
			return "bigint"
		case "int2":
			return "smallint"
		case "float8", "double precision":
			return "double precision"
		case "character varying":
			return "varchar"
		}
		s = strings.ReplaceAll(s, "character varying", "varchar")
		return s
	}
	return normalize(live) == normalize(declared)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
