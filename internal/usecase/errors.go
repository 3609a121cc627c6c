// Compound-operation error values. The booking coordinator never downgrades
// a specific store error to a generic one, but it does wrap a lower-level
// "not found" into the entity-specific value so callers can react to a
// missing account differently from a missing screening.
package usecase

import "errors"

// ErrAccountNotFound is returned by Book when the booking account is absent.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountInactive is returned by Book when the account exists but is
// deactivated.
var ErrAccountInactive = errors.New("account is inactive")

// ErrScreeningNotFound is returned by Book when the screening is absent.
var ErrScreeningNotFound = errors.New("screening not found")

// ErrTicketNotFound is returned by Release when the ticket is absent.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrValidation wraps field-constraint failures detected in the service
// layer before anything is persisted.
var ErrValidation = errors.New("validation failed")
