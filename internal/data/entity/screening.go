package entity

// MaxSeats is the configured per-room capacity. The remaining-seat counter
// always stays within [0, MaxSeats] and is only ever moved through
// ScreeningRepository.AdjustSeats.
const MaxSeats = 120

type Screening struct {
	Base
	Title          string  `db:"title" validate:"required,min=1,max=150"`
	BasePrice      float64 `db:"base_price" validate:"gte=0,lte=100"`
	Room           int     `db:"room" validate:"gte=1,lte=30"`
	RemainingSeats int     `db:"remaining_seats" validate:"gte=0,lte=120"`
}
