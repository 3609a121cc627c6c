package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ticket references its account and screening by id only; neither side owns
// the ticket. Price is a snapshot of the screening's base price at booking
// time and never changes afterwards.
type Ticket struct {
	Base
	ScreeningTime time.Time `db:"screening_time" validate:"required"`
	Price         float64   `db:"price"`
	AccountID     uuid.UUID `db:"account_id"`
	ScreeningID   uuid.UUID `db:"screening_id"`
}
