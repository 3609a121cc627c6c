package adaptor

import (
	"cinema-tickets/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Account   *AccountHandler
	Screening *ScreeningHandler
	Ticket    *TicketHandler
	Booking   *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Account:   NewAccountHandler(service.Account, log),
		Screening: NewScreeningHandler(service.Screening, log),
		Ticket:    NewTicketHandler(service.Ticket, log),
		Booking:   NewBookingHandler(service.Booking, log),
	}
}
