package usecase

import (
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Account   AccountService
	Screening ScreeningService
	Ticket    TicketService
	Booking   BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Account:   NewAccountService(repo, log),
		Screening: NewScreeningService(repo, log),
		Ticket:    NewTicketService(repo, log),
		Booking:   NewBookingService(repo, log),
	}
}
