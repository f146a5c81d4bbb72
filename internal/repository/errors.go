package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrDuplicate = errors.New("record already exists")
	ErrNotFound  = errors.New("record not found")
)

const uniqueViolation = "23505"

// wrapPQ prefixes err with op and maps unique violations to ErrDuplicate while
// keeping the store's message for diagnostics.
func wrapPQ(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pqErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
