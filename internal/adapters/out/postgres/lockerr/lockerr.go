// Package lockerr translates PostgreSQL lock acquisition failures into the
// retryable domain lock-timeout error. Every transaction runs with a
// statement-local lock_timeout, so a contended row surfaces as SQLSTATE 55P03
// instead of blocking the request indefinitely.
package lockerr

import (
	"errors"

	"orderflow/internal/pkg/errs"

	"github.com/lib/pq"
)

// lockNotAvailable is the PostgreSQL SQLSTATE raised when lock_timeout expires.
const lockNotAvailable = "55P03"

// Map converts a lock-timeout failure on the given resource into
// errs.LockTimeoutError. Any other error is returned unchanged.
func Map(err error, resource string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == lockNotAvailable {
		return errs.NewLockTimeoutError(resource, err)
	}

	return err
}
