package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgError extracts the SQLSTATE and constraint name from either driver.
func pgError(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}

	return "", "", false
}

// translateError maps constraint violations to domain errors. A nil target keeps err.
func translateError(err error, onUnique, onForeignKey error) error {
	code, _, ok := pgError(err)
	if !ok {
		return err
	}

	switch {
	case code == pgUniqueViolation && onUnique != nil:
		return onUnique
	case code == pgForeignKeyViolation && onForeignKey != nil:
		return onForeignKey
	}
	return err
}
