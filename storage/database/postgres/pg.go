package pgrepos

import (
	"strconv"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// foreignKeyViolation is the postgres error code for a broken reference.
const foreignKeyViolation = "23503"

func isUniqueViolation(err error) bool {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		return pqErr.Code == uniqueViolation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		return pqErr.Code == foreignKeyViolation
	}
	return false
}

func itoa(n int) string { return strconv.Itoa(n) }
