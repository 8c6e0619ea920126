package migration

import (
	"fmt"
	"strings"

	"hrschema/pkg/schema"
)

// PlannerOptions configures SQL generation behavior.
type PlannerOptions struct {
	// IfNotExists adds IF NOT EXISTS to CREATE statements, making the
	// generated migration idempotent and safe to run multiple times.
	IfNotExists bool
}

// Planner generates schema DDL from table, sequence, and view metadata.
type Planner struct {
	options PlannerOptions
}

// NewPlanner creates a new planner with default options.
func NewPlanner() *Planner {
	return &Planner{options: PlannerOptions{IfNotExists: true}}
}

// NewPlannerWithOptions creates a new planner with custom options.
func NewPlannerWithOptions(opts PlannerOptions) *Planner {
	return &Planner{options: opts}
}

// Schema is everything the planner materializes: tables in creation order,
// standalone sequences, and derived views.
type Schema struct {
	Tables    []*schema.TableMetadata // must already be in dependency order
	Sequences []schema.SequenceMetadata
	Views     []schema.ViewMetadata
}

// GenerateSchema generates the full up and down DDL for a schema.
//
// Up order: sequences, tables (dependency order, inline constraints except
// deferred foreign keys), deferred foreign keys via ALTER TABLE, indexes,
// views, comments. Down order reverses: views, tables (reverse order, which
// also drops their indexes), sequences. Deferred constraints need no
// explicit drop; they go down with their tables.
func (p *Planner) GenerateSchema(s *Schema) (upSQL, downSQL string) {
	var up []string
	var down []string

	for _, seq := range s.Sequences {
		up = append(up, p.generateCreateSequence(seq))
	}

	for _, table := range s.Tables {
		up = append(up, p.generateCreateTable(table))
	}

	for _, d := range schema.CollectDeferred(s.Tables) {
		up = append(up, fmt.Sprintf("ALTER TABLE %s ADD %s;",
			d.Table, p.generateForeignKeyDefinition(d.ForeignKey)))
	}

	for _, table := range s.Tables {
		for _, idx := range table.Indexes {
			up = append(up, p.generateCreateIndex(table.Name, idx))
		}
	}

	for _, view := range s.Views {
		up = append(up, p.generateCreateView(view))
	}

	for _, table := range s.Tables {
		up = append(up, p.generateComments(table)...)
	}
	for _, view := range s.Views {
		if view.Comment != "" {
			up = append(up, fmt.Sprintf("COMMENT ON VIEW %s IS %s;", view.Name, quoteLiteral(view.Comment)))
		}
	}

	for _, view := range s.Views {
		down = append(down, fmt.Sprintf("DROP VIEW IF EXISTS %s;", view.Name))
	}
	for i := len(s.Tables) - 1; i >= 0; i-- {
		// The deferred manager constraint would block dropping employees
		// before departments, so shed it first.
		for _, fk := range s.Tables[i].ForeignKeys {
			if fk.Deferred {
				down = append(down, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s;",
					s.Tables[i].Name, fk.Name))
			}
		}
	}
	for i := len(s.Tables) - 1; i >= 0; i-- {
		down = append(down, fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.Tables[i].Name))
	}
	for _, seq := range s.Sequences {
		down = append(down, fmt.Sprintf("DROP SEQUENCE IF EXISTS %s;", seq.Name))
	}

	return strings.Join(up, "\n\n") + "\n", strings.Join(down, "\n\n") + "\n"
}

// generateCreateTable generates a CREATE TABLE statement. Deferred foreign
// keys are excluded; the caller adds them after every table exists.
func (p *Planner) generateCreateTable(table *schema.TableMetadata) string {
	var parts []string

	var singlePKColumn string
	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) == 1 {
		singlePKColumn = table.PrimaryKey.Columns[0]
	}

	for _, col := range table.Columns {
		colDef := p.generateColumnDefinition(col)
		if singlePKColumn != "" && col.Name == singlePKColumn {
			colDef += " PRIMARY KEY"
		}
		parts = append(parts, "    "+colDef)
	}

	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) > 1 {
		parts = append(parts, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)",
			table.PrimaryKey.Name, strings.Join(table.PrimaryKey.Columns, ", ")))
	}

	for _, fk := range table.ForeignKeys {
		if fk.Deferred {
			continue
		}
		parts = append(parts, "    "+p.generateForeignKeyDefinition(fk))
	}

	for _, constraint := range table.Constraints {
		switch constraint.Type {
		case schema.CheckConstraint:
			parts = append(parts, fmt.Sprintf("    CONSTRAINT %s CHECK %s", constraint.Name, constraint.Expression))
		case schema.UniqueConstraint:
			if len(constraint.Columns) > 1 {
				parts = append(parts, fmt.Sprintf("    CONSTRAINT %s UNIQUE (%s)",
					constraint.Name, strings.Join(constraint.Columns, ", ")))
			}
		}
	}

	createClause := "CREATE TABLE"
	if p.options.IfNotExists {
		createClause = "CREATE TABLE IF NOT EXISTS"
	}
	return fmt.Sprintf("%s %s (\n%s\n);", createClause, table.Name, strings.Join(parts, ",\n"))
}

// generateColumnDefinition generates a column definition.
func (p *Planner) generateColumnDefinition(col schema.ColumnMetadata) string {
	parts := []string{col.Name, col.SQLType}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.Default != nil {
		parts = append(parts, "DEFAULT", *col.Default)
	}
	if col.Unique {
		parts = append(parts, "UNIQUE")
	}

	return strings.Join(parts, " ")
}

// generateForeignKeyDefinition generates a foreign key constraint. No
// referential actions: the schema declares plain constraints, never cascades.
func (p *Planner) generateForeignKeyDefinition(fk schema.ForeignKeyMetadata) string {
	return fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		fk.Name,
		strings.Join(fk.Columns, ", "),
		fk.ReferencedTable,
		strings.Join(fk.ReferencedColumns, ", "))
}

// generateCreateIndex generates a CREATE INDEX statement.
func (p *Planner) generateCreateIndex(tableName string, idx schema.IndexMetadata) string {
	var parts []string

	if idx.Unique {
		parts = append(parts, "CREATE UNIQUE INDEX")
	} else {
		parts = append(parts, "CREATE INDEX")
	}
	if p.options.IfNotExists {
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, idx.Name, "ON", tableName,
		fmt.Sprintf("(%s)", strings.Join(idx.Columns, ", ")))

	return strings.Join(parts, " ") + ";"
}

// generateCreateSequence generates a CREATE SEQUENCE statement.
func (p *Planner) generateCreateSequence(seq schema.SequenceMetadata) string {
	createClause := "CREATE SEQUENCE"
	if p.options.IfNotExists {
		createClause = "CREATE SEQUENCE IF NOT EXISTS"
	}

	parts := []string{createClause, seq.Name}
	if seq.Start > 0 {
		parts = append(parts, fmt.Sprintf("START WITH %d", seq.Start))
	}
	if seq.Increment > 1 {
		parts = append(parts, fmt.Sprintf("INCREMENT BY %d", seq.Increment))
	}

	return strings.Join(parts, " ") + ";"
}

// generateCreateView generates a CREATE OR REPLACE VIEW statement with an
// explicit column list.
func (p *Planner) generateCreateView(view schema.ViewMetadata) string {
	return fmt.Sprintf("CREATE OR REPLACE VIEW %s (\n    %s\n) AS\n%s;",
		view.Name,
		strings.Join(view.Columns, ",\n    "),
		view.Query)
}

// generateComments generates COMMENT ON statements for a table and its
// columns. Tables or columns without comments produce nothing.
func (p *Planner) generateComments(table *schema.TableMetadata) []string {
	var statements []string

	if table.Comment != "" {
		statements = append(statements, fmt.Sprintf("COMMENT ON TABLE %s IS %s;",
			table.Name, quoteLiteral(table.Comment)))
	}
	for _, col := range table.Columns {
		if col.Comment != "" {
			statements = append(statements, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s;",
				table.Name, col.Name, quoteLiteral(col.Comment)))
		}
	}

	return statements
}

// quoteLiteral quotes a string as a SQL literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
