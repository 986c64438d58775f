package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes translated into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRep      = "22P02"
)

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && string(perr.Code) == codeUniqueViolation
}

// isForeignKeyViolation reports whether err is a foreign key violation.
func isForeignKeyViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && string(perr.Code) == codeForeignKeyViolation
}

// isInvalidIDSyntax reports whether err is a failed cast of a malformed id
// string to uuid. A malformed id can never match a row, so callers treat it
// the same as an absent one.
func isInvalidIDSyntax(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && string(perr.Code) == codeInvalidTextRep
}
