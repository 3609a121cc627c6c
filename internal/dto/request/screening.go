package request

type CreateScreeningRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=150"`
	BasePrice float64 `json:"base_price" validate:"gte=0,lte=100"`
	Room      int     `json:"room" validate:"gte=1,lte=30"`
	Seats     int     `json:"seats" validate:"gte=0,lte=120"`
}

type UpdateScreeningRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=150"`
	BasePrice float64 `json:"base_price" validate:"gte=0,lte=100"`
	Room      int     `json:"room" validate:"gte=1,lte=30"`
}
