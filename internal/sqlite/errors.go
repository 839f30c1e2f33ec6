package sqlite

import (
	"context"
	"errors"
	"strings"

	"github.com/biteswipe/backend/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// mapError surfaces bounded-timeout failures as the transient kind callers
// may retry; everything else passes through.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return repository.ErrUnavailable
	}
	return err
}
