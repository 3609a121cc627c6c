package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService is the transaction boundary for the two compound
// operations. Book and Release are the only paths that create or delete
// tickets, and the only callers of the seat-counter adjustment.
type BookingService interface {
	Book(ctx context.Context, accountID string, req *request.BookTicketRequest) (*response.TicketResponse, error)
	Release(ctx context.Context, ticketID string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

// Book validates the account and screening, decrements the seat counter and
// inserts the ticket as one atomic unit of work. Any failure aborts the
// whole unit: no orphan ticket, no decremented-but-ticketless seat.
func (s *bookingService) Book(ctx context.Context, accountID string, req *request.BookTicketRequest) (*response.TicketResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid account ID %s", ErrValidation, accountID)
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid screening ID %s", ErrValidation, req.ScreeningID)
	}

	var ticket *entity.Ticket

	err = s.repo.Tx.WithinTx(ctx, func(r *repository.Repository) error {
		account, err := r.Account.FindByID(ctx, accountUUID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("book for account %s: %w", accountID, ErrAccountNotFound)
		}
		if !account.Active {
			return fmt.Errorf("book for account %s: %w", account.Login, ErrAccountInactive)
		}

		screening, err := r.Screening.FindByID(ctx, screeningID)
		if err != nil {
			return err
		}
		if screening == nil {
			return fmt.Errorf("book screening %s: %w", req.ScreeningID, ErrScreeningNotFound)
		}

		// Conditional decrement: refuses the whole unit of work when the
		// counter would go negative, instead of overbooking.
		if err := r.Screening.AdjustSeats(ctx, screeningID, -1); err != nil {
			return err
		}

		now := time.Now()
		ticket = &entity.Ticket{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			ScreeningTime: req.ScreeningTime,
			Price:         screening.BasePrice, // snapshot at booking time
			AccountID:     accountUUID,
			ScreeningID:   screeningID,
		}

		return r.Ticket.Create(ctx, ticket)
	})

	if err != nil {
		s.log.Warn("Booking aborted",
			zap.Error(err),
			zap.String("account_id", accountID),
			zap.String("screening_id", req.ScreeningID),
		)
		return nil, err
	}

	s.log.Info("Ticket booked",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("account_id", accountID),
		zap.String("screening_id", req.ScreeningID),
		zap.Float64("price", ticket.Price),
	)

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

// Release deletes the ticket and restores one seat to the screening the
// deleted row referenced, as one atomic unit. The screening id comes from
// the deleted record, never from the caller.
func (s *bookingService) Release(ctx context.Context, ticketID string) error {
	ticketUUID, err := uuid.Parse(ticketID)
	if err != nil {
		return fmt.Errorf("%w: invalid ticket ID %s", ErrValidation, ticketID)
	}

	err = s.repo.Tx.WithinTx(ctx, func(r *repository.Repository) error {
		screeningID, err := r.Ticket.Delete(ctx, ticketUUID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("release ticket %s: %w", ticketID, ErrTicketNotFound)
			}
			return err
		}

		return r.Screening.AdjustSeats(ctx, screeningID, +1)
	})

	if err != nil {
		s.log.Warn("Release aborted",
			zap.Error(err),
			zap.String("ticket_id", ticketID),
		)
		return err
	}

	s.log.Info("Ticket released", zap.String("ticket_id", ticketID))
	return nil
}
