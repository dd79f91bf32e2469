package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique constraint
// (post slugs, user emails, webhook event IDs).
var ErrDuplicate = errors.New("duplicate")

// isDuplicateKey reports whether err is a Postgres unique-constraint violation.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
