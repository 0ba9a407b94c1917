package repositories

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translateGORMError maps GORM and driver failures onto the repository
// sentinels. Connection failures never carry their text upward as anything
// but ErrUnavailable.
func translateGORMError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return ErrDuplicate
	case isConnectionError(err):
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	var connectErr *pgconn.ConnectError
	return errors.As(err, &opErr) ||
		errors.As(err, &connectErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err)
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
