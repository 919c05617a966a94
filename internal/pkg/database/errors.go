package database

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation é o SQLSTATE de violação de UNIQUE no PostgreSQL.
const uniqueViolation = "23505"

// IsUniqueViolation indica se err veio de uma restrição UNIQUE.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
