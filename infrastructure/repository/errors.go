package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrDuplicateKey indica violação de unique constraint
var ErrDuplicateKey = errors.New("registro duplicado")

const uniqueViolation = "23505"

// wrapDBError padroniza os erros do driver, preservando o código do Postgres
func wrapDBError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w (constraint: %s)", op, ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%s: database error: %w (code: %s)", op, pqErr, pqErr.Code)
	}
	return fmt.Errorf("%s: %w", op, err)
}
