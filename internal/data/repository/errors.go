// Package repository defines sentinel error values that are reused across
// the stores. Higher layers match on these with errors.Is to distinguish
// failure classes: absent records, uniqueness violations, and state
// preconditions such as deleting a screening that still has tickets.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no record matches the given id or login.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateLogin is returned when an insert violates the global
// uniqueness index on account login. The index spans all variants.
var ErrDuplicateLogin = errors.New("login already taken")

// ErrVariantMismatch is returned when a delete names an account whose stored
// discriminator differs from the variant the caller expected.
var ErrVariantMismatch = errors.New("account variant mismatch")

// ErrHasDependentTickets is returned when a screening cannot be deleted
// because tickets still reference it.
var ErrHasDependentTickets = errors.New("screening has dependent tickets")

// ErrNoSeatsAvailable is returned when a seat adjustment would push the
// remaining-seat counter outside its allowed range.
var ErrNoSeatsAvailable = errors.New("no seats available")

// isUniqueViolation reports whether err is a Postgres unique-index violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
