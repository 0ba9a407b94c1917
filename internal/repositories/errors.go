package repositories

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the referenced record does not exist, including
	// ids that are not well formed for the store.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrUnavailable indicates the store could not be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// isUniqueViolation recognises duplicate-key failures from drivers that do
// not translate them into a typed error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
