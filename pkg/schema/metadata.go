// Package schema defines the metadata model for relational schema objects
// and the struct-tag parser that extracts it from Go model types.
package schema

import "reflect"

// TableMetadata describes a single table: its columns, keys, constraints,
// indexes, and descriptive comment.
type TableMetadata struct {
	Name        string
	GoType      reflect.Type
	Columns     []ColumnMetadata
	PrimaryKey  *PrimaryKeyMetadata
	ForeignKeys []ForeignKeyMetadata
	Indexes     []IndexMetadata
	Constraints []ConstraintMetadata
	Comment     string
}

// ColumnMetadata describes a single column.
type ColumnMetadata struct {
	Name     string
	GoField  string
	GoType   reflect.Type
	SQLType  string
	Nullable bool
	Unique   bool
	Default  *string
	Comment  string
	Position int
}

// PrimaryKeyMetadata describes a primary key, possibly composite.
type PrimaryKeyMetadata struct {
	Name    string
	Columns []string
}

// ForeignKeyMetadata describes a referential constraint. A deferred foreign
// key is excluded from table creation and added afterwards with ALTER TABLE,
// which is how cyclic references between tables are expressed.
type ForeignKeyMetadata struct {
	Name              string
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
	Deferred          bool
}

// IndexMetadata describes a secondary index.
type IndexMetadata struct {
	Name    string
	Columns []string
	Unique  bool
}

// ConstraintType distinguishes table constraints.
type ConstraintType string

const (
	// CheckConstraint is a CHECK (expression) constraint.
	CheckConstraint ConstraintType = "CHECK"
	// UniqueConstraint is a UNIQUE (columns) constraint.
	UniqueConstraint ConstraintType = "UNIQUE"
)

// ConstraintMetadata describes a CHECK or UNIQUE table constraint.
type ConstraintMetadata struct {
	Name       string
	Type       ConstraintType
	Columns    []string
	Expression string
}

// SequenceMetadata describes a standalone sequence.
type SequenceMetadata struct {
	Name      string
	Start     int64
	Increment int64
}

// ViewMetadata describes a derived, read-only view. Query holds the SELECT
// body; the view is recomputed on every read and never materialized.
type ViewMetadata struct {
	Name    string
	Columns []string
	Query   string
	Comment string
}

// GetColumnByName returns the column with the given name, or nil.
func (t *TableMetadata) GetColumnByName(name string) *ColumnMetadata {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// GetForeignKey returns the foreign key constraint with the given name, or nil.
func (t *TableMetadata) GetForeignKey(name string) *ForeignKeyMetadata {
	for i := range t.ForeignKeys {
		if t.ForeignKeys[i].Name == name {
			return &t.ForeignKeys[i]
		}
	}
	return nil
}

// GetIndex returns the index with the given name, or nil.
func (t *TableMetadata) GetIndex(name string) *IndexMetadata {
	for i := range t.Indexes {
		if t.Indexes[i].Name == name {
			return &t.Indexes[i]
		}
	}
	return nil
}

// GetConstraint returns the table constraint with the given name, or nil.
func (t *TableMetadata) GetConstraint(name string) *ConstraintMetadata {
	for i := range t.Constraints {
		if t.Constraints[i].Name == name {
			return &t.Constraints[i]
		}
	}
	return nil
}

// References reports whether the table carries a non-deferred foreign key to
// the named table. Self-references are ignored: they never affect creation
// order.
func (t *TableMetadata) References(table string) bool {
	for _, fk := range t.ForeignKeys {
		if fk.Deferred || fk.ReferencedTable == t.Name {
			continue
		}
		if fk.ReferencedTable == table {
			return true
		}
	}
	return false
}

// Tabler is implemented by model types that declare an explicit table name.
// Without it the parser falls back to the snake_cased struct name.
type Tabler interface {
	TableName() string
}

// Indexer is implemented by model types that declare indexes beyond what
// column tags can express, such as multi-column indexes.
type Indexer interface {
	Indexes() []IndexMetadata
}
