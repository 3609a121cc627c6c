package request

import "time"

// RescheduleTicketRequest carries the only mutable ticket field. A null or
// missing time is rejected by validation.
type RescheduleTicketRequest struct {
	ScreeningTime *time.Time `json:"screening_time" validate:"required"`
}
