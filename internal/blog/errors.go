package blog

import (
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

// The three error kinds callers of this package can observe. Store-native
// error types never cross the package boundary; "no match" on reads is a nil
// post or an empty page, not an error.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInternal = errors.New("internal error")
)

// SQLSTATE class 23505, unique_violation.
const codeUniqueViolation = "23505"

// classify translates a store error into the domain taxonomy: a unique
// constraint violation (duplicate slug, tag name race) becomes ErrConflict,
// a missing update target becomes ErrNotFound, everything else ErrInternal.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pg.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == codeUniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Field('M'))
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}
