package schema

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	// StructTagKey is the key used in struct tags (e.g., `hr:"..."`).
	StructTagKey = "hr"
)

// sqlTypeOptions are the tag options recognized as SQL column types.
var sqlTypeOptions = []string{
	"char", "varchar", "text",
	"smallint", "integer", "bigint",
	"numeric", "decimal", "real", "double precision",
	"boolean", "bool",
	"date", "time", "timestamp", "timestamptz", "interval",
	"bytea", "uuid",
}

// Parser parses struct definitions to extract table metadata.
type Parser struct {
	cache map[reflect.Type]*TableMetadata
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		cache: make(map[reflect.Type]*TableMetadata),
	}
}

// Parse extracts TableMetadata from a Go struct type.
func (p *Parser) Parse(modelType reflect.Type) (*TableMetadata, error) {
	for modelType.Kind() == reflect.Pointer {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", modelType.Kind())
	}
	if cached, ok := p.cache[modelType]; ok {
		return cached, nil
	}

	table := &TableMetadata{
		Name:   extractTableName(modelType),
		GoType: modelType,
	}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		if !field.IsExported() {
			continue
		}
		tagValue := field.Tag.Get(StructTagKey)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		opts, err := parseTag(tagValue)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		column := p.buildColumn(field, opts, i)

		if opts.Has("primaryKey") {
			if table.PrimaryKey == nil {
				table.PrimaryKey = &PrimaryKeyMetadata{
					Name:    table.Name + "_pkey",
					Columns: []string{column.Name},
				}
			} else {
				table.PrimaryKey.Columns = append(table.PrimaryKey.Columns, column.Name)
			}
		}

		if fk, err := buildForeignKey(table.Name, column.Name, opts); err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		} else if fk != nil {
			table.ForeignKeys = append(table.ForeignKeys, *fk)
		}

		if expr := opts.Get("check"); expr != "" {
			name := opts.Get("checkName")
			if name == "" {
				name = fmt.Sprintf("%s_%s_check", table.Name, column.Name)
			}
			table.Constraints = append(table.Constraints, ConstraintMetadata{
				Name:       name,
				Type:       CheckConstraint,
				Columns:    []string{column.Name},
				Expression: "(" + expr + ")",
			})
		}

		if opts.Has("index") {
			name := opts.Get("index")
			if name == "" {
				name = fmt.Sprintf("idx_%s_%s", table.Name, column.Name)
			}
			table.Indexes = append(table.Indexes, IndexMetadata{
				Name:    name,
				Columns: []string{column.Name},
			})
		}

		table.Columns = append(table.Columns, column)
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("model %s has no tagged columns", modelType.Name())
	}

	// Indexes beyond what column tags can express (multi-column).
	if indexer, ok := reflect.New(modelType).Interface().(Indexer); ok {
		table.Indexes = append(table.Indexes, indexer.Indexes()...)
	}

	p.cache[modelType] = table
	return table, nil
}

// buildColumn creates ColumnMetadata from a struct field and its tag options.
func (p *Parser) buildColumn(field reflect.StructField, opts *TagOptions, position int) ColumnMetadata {
	column := ColumnMetadata{
		Name:     opts.Name,
		GoField:  field.Name,
		GoType:   field.Type,
		Position: position,
	}

	if sqlType := opts.SQLType(); sqlType != "" {
		column.SQLType = sqlType
	} else {
		column.SQLType = GoTypeToPostgreSQL(field.Type)
	}

	column.Nullable = !opts.Has("notNull") && !opts.Has("primaryKey")
	if IsNullableType(field.Type) {
		column.Nullable = true
	}

	if defaultVal := opts.Get("default"); defaultVal != "" {
		column.Default = &defaultVal
	}
	column.Unique = opts.Has("unique")

	return column
}

// buildForeignKey parses a fk(table.column) option into metadata. Returns nil
// when the tag declares no foreign key.
func buildForeignKey(tableName, columnName string, opts *TagOptions) (*ForeignKeyMetadata, error) {
	ref := opts.Get("fk")
	if ref == "" {
		return nil, nil
	}

	refTable, refColumn, ok := strings.Cut(ref, ".")
	if !ok || refTable == "" || refColumn == "" {
		return nil, fmt.Errorf("invalid foreign key reference %q, want table.column", ref)
	}

	name := opts.Get("fkName")
	if name == "" {
		name = fmt.Sprintf("fk_%s_%s_%s", tableName, columnName, refTable)
	}

	return &ForeignKeyMetadata{
		Name:              name,
		Columns:           []string{columnName},
		ReferencedTable:   refTable,
		ReferencedColumns: []string{refColumn},
		Deferred:          opts.Has("deferred"),
	}, nil
}

// extractTableName returns the table name for a struct type: the Tabler
// method when implemented, otherwise the snake_cased struct name.
func extractTableName(modelType reflect.Type) string {
	if tabler, ok := reflect.New(modelType).Interface().(Tabler); ok {
		return tabler.TableName()
	}
	return toSnakeCase(modelType.Name())
}

// TagOptions represents parsed tag options.
type TagOptions struct {
	Name    string
	Options map[string]string
}

// parseTag parses a struct tag value into TagOptions.
// Format: "column_name,option1,option2(value),option3"
func parseTag(tag string) (*TagOptions, error) {
	parts := splitTag(tag)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty tag value")
	}

	opts := &TagOptions{
		Name:    parts[0],
		Options: make(map[string]string),
	}
	for _, opt := range parts[1:] {
		if idx := strings.Index(opt, "("); idx != -1 {
			if !strings.HasSuffix(opt, ")") {
				return nil, fmt.Errorf("invalid option format: %s", opt)
			}
			opts.Options[opt[:idx]] = opt[idx+1 : len(opt)-1]
		} else {
			opts.Options[opt] = ""
		}
	}
	return opts, nil
}

// Has checks if an option exists.
func (t *TagOptions) Has(key string) bool {
	_, ok := t.Options[key]
	return ok
}

// Get returns the value of an option.
func (t *TagOptions) Get(key string) string {
	return t.Options[key]
}

// SQLType returns the SQL type declared by the tag, if any.
// Examples: char(2), varchar(25), numeric(8,2), date, integer.
func (t *TagOptions) SQLType() string {
	for _, sqlType := range sqlTypeOptions {
		if t.Has(sqlType) {
			if value := t.Get(sqlType); value != "" {
				return fmt.Sprintf("%s(%s)", sqlType, value)
			}
			return sqlType
		}
	}
	return ""
}

// splitTag splits a tag value by commas, keeping commas inside parentheses.
func splitTag(tag string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, ch := range tag {
		switch ch {
		case '(':
			depth++
			current.WriteRune(ch)
		case ')':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

// toSnakeCase converts a string from PascalCase to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, ch := range s {
		if i > 0 && ch >= 'A' && ch <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(ch)
	}
	return strings.ToLower(result.String())
}
