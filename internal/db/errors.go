package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint failure. When
// column is not empty the violated constraint must mention it.
func IsUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	if column == "" {
		return true
	}
	return pgErr.ColumnName == column || containsWord(pgErr.ConstraintName, column) || containsWord(pgErr.Detail, column)
}

func IsNoRows(err error) bool {
	return errors.Is(err, ErrNoRows)
}

func containsWord(s, word string) bool {
	for i := 0; i+len(word) <= len(s); i++ {
		if s[i:i+len(word)] != word {
			continue
		}
		before := i == 0 || !isIdentChar(s[i-1])
		after := i+len(word) == len(s) || !isIdentChar(s[i+len(word)])
		if before && after {
			return true
		}
	}
	return false
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
