// Package runtime provides the database connection layer and error mapping.
package runtime

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a unique constraint is violated.
	ErrDuplicateKey = errors.New("duplicate key value")

	// ErrForeignKeyViolation is returned when a foreign key constraint is violated.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrCheckViolation is returned when a check constraint is violated.
	ErrCheckViolation = errors.New("check constraint violation")

	// ErrNotNullViolation is returned when a NOT NULL constraint is violated.
	ErrNotNullViolation = errors.New("not null violation")

	// ErrNoConnection is returned when no database connection is available.
	ErrNoConnection = errors.New("no database connection")
)

// PostgreSQL error codes the schema's constraints can raise.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// MapError converts driver errors into the package's sentinel errors so
// callers can branch with errors.Is. The constraint name, when the server
// reports one, is preserved in the message. Unrecognized errors pass through.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return constraintError(ErrDuplicateKey, pgErr)
	case codeForeignKeyViolation:
		return constraintError(ErrForeignKeyViolation, pgErr)
	case codeCheckViolation:
		return constraintError(ErrCheckViolation, pgErr)
	case codeNotNullViolation:
		if pgErr.ColumnName != "" {
			return fmt.Errorf("%w: column %s", ErrNotNullViolation, pgErr.ColumnName)
		}
		return ErrNotNullViolation
	default:
		return err
	}
}

func constraintError(sentinel error, pgErr *pgconn.PgError) error {
	if pgErr.ConstraintName != "" {
		return fmt.Errorf("%w: constraint %s", sentinel, pgErr.ConstraintName)
	}
	return sentinel
}

// QueryError represents a query execution error.
type QueryError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
