package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type ScreeningResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	BasePrice      float64   `json:"base_price"`
	Room           int       `json:"room"`
	RemainingSeats int       `json:"remaining_seats"`
	CreatedAt      time.Time `json:"created_at"`
}

func ScreeningToResponse(screening *entity.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:             screening.ID.String(),
		Title:          screening.Title,
		BasePrice:      screening.BasePrice,
		Room:           screening.Room,
		RemainingSeats: screening.RemainingSeats,
		CreatedAt:      screening.CreatedAt,
	}
}
