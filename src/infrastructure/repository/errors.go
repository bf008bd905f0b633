package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"lifelog/src/domain"

	"github.com/lib/pq"
)

// PostgreSQLのエラーコード
const (
	pqUniqueViolation = "23505"
	pqInvalidTextRepr = "22P02"
)

// translateError maps driver errors onto the domain sentinels
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
		case pqInvalidTextRepr:
			// UUIDとして解釈できないIDは存在しない扱い
			return domain.ErrNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOneRow turns an UPDATE/DELETE that touched nothing into ErrNotFound
func expectOneRow(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s: %w", op, err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}
