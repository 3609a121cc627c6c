package usecase

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketService exposes reads and reschedule only. Tickets come into
// existence through BookingService.Book and leave through
// BookingService.Release; there is no bare create or delete here.
type TicketService interface {
	GetByID(ctx context.Context, ticketID string) (*response.TicketResponse, error)
	GetAll(ctx context.Context) ([]response.TicketResponse, error)
	GetAllByAccount(ctx context.Context, accountID string) ([]response.TicketResponse, error)
	GetAllByScreening(ctx context.Context, screeningID string) ([]response.TicketResponse, error)
	Reschedule(ctx context.Context, ticketID string, req *request.RescheduleTicketRequest) (*response.TicketResponse, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) GetByID(ctx context.Context, ticketID string) (*response.TicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ticket ID %s", ErrValidation, ticketID)
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, repository.ErrNotFound)
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) GetAll(ctx context.Context) ([]response.TicketResponse, error) {
	tickets, err := s.repo.Ticket.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ticketsToResponses(tickets), nil
}

func (s *ticketService) GetAllByAccount(ctx context.Context, accountID string) ([]response.TicketResponse, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid account ID %s", ErrValidation, accountID)
	}

	tickets, err := s.repo.Ticket.FindAllByAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return ticketsToResponses(tickets), nil
}

func (s *ticketService) GetAllByScreening(ctx context.Context, screeningID string) ([]response.TicketResponse, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid screening ID %s", ErrValidation, screeningID)
	}

	tickets, err := s.repo.Ticket.FindAllByScreening(ctx, id)
	if err != nil {
		return nil, err
	}
	return ticketsToResponses(tickets), nil
}

func ticketsToResponses(tickets []*entity.Ticket) []response.TicketResponse {
	responses := make([]response.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		responses[i] = response.TicketToResponse(ticket)
	}
	return responses
}

// Reschedule updates the screening time, the only mutable ticket field.
func (s *ticketService) Reschedule(ctx context.Context, ticketID string, req *request.RescheduleTicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reschedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if req.ScreeningTime.IsZero() {
		return nil, fmt.Errorf("%w: screening time must not be zero", ErrValidation)
	}

	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ticket ID %s", ErrValidation, ticketID)
	}

	if err := s.repo.Ticket.UpdateTime(ctx, id, *req.ScreeningTime); err != nil {
		return nil, err
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, repository.ErrNotFound)
	}

	s.log.Info("Ticket rescheduled",
		zap.String("ticket_id", ticketID),
		zap.Time("screening_time", ticket.ScreeningTime),
	)

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}
