package request

import "time"

// BookTicketRequest starts the compound booking operation. The account id
// comes from the identity context, never from the body. No past-date check
// on the screening time.
type BookTicketRequest struct {
	ScreeningID   string    `json:"screening_id" validate:"required,uuid4"`
	ScreeningTime time.Time `json:"screening_time" validate:"required"`
}
