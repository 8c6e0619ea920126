package schema

import (
	"database/sql"
	"reflect"
	"time"
)

// GoTypeToPostgreSQL maps a Go type to its default PostgreSQL type. The tag
// SQL type, when present, always wins; this is only the fallback for untyped
// tags. Returns empty string for types with no sensible default.
func GoTypeToPostgreSQL(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t {
	case reflect.TypeOf(time.Time{}):
		return "timestamp with time zone"
	case reflect.TypeOf(sql.NullString{}):
		return "text"
	case reflect.TypeOf(sql.NullInt64{}):
		return "bigint"
	case reflect.TypeOf(sql.NullInt32{}):
		return "integer"
	case reflect.TypeOf(sql.NullFloat64{}):
		return "double precision"
	case reflect.TypeOf(sql.NullBool{}):
		return "boolean"
	case reflect.TypeOf(sql.NullTime{}):
		return "timestamp with time zone"
	}

	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int8, reflect.Int16, reflect.Uint8:
		return "smallint"
	case reflect.Int32, reflect.Int, reflect.Uint16:
		return "integer"
	case reflect.Int64, reflect.Uint32, reflect.Uint64:
		return "bigint"
	case reflect.Float32:
		return "real"
	case reflect.Float64:
		return "double precision"
	case reflect.String:
		return "text"
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return "bytea"
		}
	}

	return ""
}

// IsNullableType reports whether a Go type represents a nullable column:
// pointers and the sql.Null* wrappers.
func IsNullableType(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		return true
	}

	switch t {
	case reflect.TypeOf(sql.NullString{}),
		reflect.TypeOf(sql.NullInt64{}),
		reflect.TypeOf(sql.NullInt32{}),
		reflect.TypeOf(sql.NullFloat64{}),
		reflect.TypeOf(sql.NullBool{}),
		reflect.TypeOf(sql.NullTime{}):
		return true
	}

	return false
}
