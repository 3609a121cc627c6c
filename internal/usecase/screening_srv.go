package usecase

import (
	"context"
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

type ScreeningService interface {
	Create(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error)
	GetByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error)
	GetAll(ctx context.Context) ([]response.ScreeningResponse, error)
	Update(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error)
	Delete(ctx context.Context, screeningID string) error
}

type screeningService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScreeningService(repo *repository.Repository, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo: repo,
		log:  log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) Create(ctx context.Context, req *request.CreateScreeningRequest) (*response.ScreeningResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	screening := &entity.Screening{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:          req.Title,
		BasePrice:      req.BasePrice,
		Room:           req.Room,
		RemainingSeats: req.Seats,
	}

	if err := s.repo.Screening.Create(ctx, screening); err != nil {
		return nil, err
	}

	s.log.Info("Screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.String("title", screening.Title),
		zap.Int("room", screening.Room),
		zap.Int("seats", screening.RemainingSeats),
	)

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

func (s *screeningService) GetByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid screening ID %s", ErrValidation, screeningID)
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, fmt.Errorf("screening %s: %w", screeningID, repository.ErrNotFound)
	}

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

func (s *screeningService) GetAll(ctx context.Context) ([]response.ScreeningResponse, error) {
	screenings, err := s.repo.Screening.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		responses[i] = response.ScreeningToResponse(screening)
	}
	return responses, nil
}

// Update is a full-record replace with the same range validation as create.
// The remaining-seat counter is untouched; it belongs to the booking
// coordinator alone.
func (s *screeningService) Update(ctx context.Context, screeningID string, req *request.UpdateScreeningRequest) (*response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid screening ID %s", ErrValidation, screeningID)
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, fmt.Errorf("update screening %s: %w", screeningID, repository.ErrNotFound)
	}

	screening.Title = req.Title
	screening.BasePrice = req.BasePrice
	screening.Room = req.Room
	screening.UpdatedAt = time.Now()

	// Defensive re-validation before persisting
	if errs := utils.ValidateStruct(screening); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if err := s.repo.Screening.Update(ctx, screening); err != nil {
		return nil, err
	}

	s.log.Info("Screening updated",
		zap.String("screening_id", screeningID),
		zap.String("title", screening.Title),
	)

	resp := response.ScreeningToResponse(screening)
	return &resp, nil
}

// Delete refuses while any ticket still references the screening. The row
// lock comes first: a concurrent booking's seat adjustment waits behind it,
// so the dependent-ticket count and the delete see a quiesced screening and
// no ticket can appear between them.
func (s *screeningService) Delete(ctx context.Context, screeningID string) error {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return fmt.Errorf("%w: invalid screening ID %s", ErrValidation, screeningID)
	}

	err = s.repo.Tx.WithinTx(ctx, func(r *repository.Repository) error {
		if err := r.Screening.LockByID(ctx, id); err != nil {
			return err
		}

		count, err := r.Ticket.CountByScreening(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("delete screening %s with %d tickets: %w",
				screeningID, count, repository.ErrHasDependentTickets)
		}

		return r.Screening.Delete(ctx, id)
	})

	if err != nil {
		s.log.Warn("Screening delete rejected",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
		return err
	}

	return nil
}
