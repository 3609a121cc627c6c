package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type TicketResponse struct {
	ID            string    `json:"id"`
	ScreeningTime time.Time `json:"screening_time"`
	Price         float64   `json:"price"`
	AccountID     string    `json:"account_id"`
	ScreeningID   string    `json:"screening_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func TicketToResponse(ticket *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID.String(),
		ScreeningTime: ticket.ScreeningTime,
		Price:         ticket.Price,
		AccountID:     ticket.AccountID.String(),
		ScreeningID:   ticket.ScreeningID.String(),
		CreatedAt:     ticket.CreatedAt,
	}
}
