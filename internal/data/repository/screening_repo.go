package repository

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindAll(ctx context.Context) ([]*entity.Screening, error)
	Update(ctx context.Context, screening *entity.Screening) error
	Delete(ctx context.Context, id uuid.UUID) error

	// LockByID takes the row lock on the screening for the rest of the
	// caller's transaction. Concurrent seat adjustments queue behind it.
	LockByID(ctx context.Context, id uuid.UUID) error

	// AdjustSeats moves the remaining-seat counter by delta in one atomic
	// statement. Used only by the booking coordinator.
	AdjustSeats(ctx context.Context, id uuid.UUID, delta int) error
}

type screeningRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewScreeningRepository(db database.Querier, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, title, base_price, room, remaining_seats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.Title,
		screening.BasePrice,
		screening.Room,
		screening.RemainingSeats,
		screening.CreatedAt,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("title", screening.Title),
		)
		return fmt.Errorf("create screening %s: %w", screening.Title, err)
	}

	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, title, base_price, room, remaining_seats, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.Title,
		&screening.BasePrice,
		&screening.Room,
		&screening.RemainingSeats,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	query := `
		SELECT id, title, base_price, room, remaining_seats, created_at, updated_at
		FROM screenings
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all screenings", zap.Error(err))
		return nil, fmt.Errorf("find all screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var screening entity.Screening
		err := rows.Scan(
			&screening.ID,
			&screening.Title,
			&screening.BasePrice,
			&screening.Room,
			&screening.RemainingSeats,
			&screening.CreatedAt,
			&screening.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &screening)
	}

	return screenings, rows.Err()
}

// Update replaces title, base price and room keyed by id. The remaining-seat
// counter is deliberately not part of the SET list: a full-record replace
// must never overwrite a counter that concurrent bookings are moving.
func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening) error {
	query := `
		UPDATE screenings
		SET title = $2, base_price = $3, room = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.Title,
		screening.BasePrice,
		screening.Room,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete screening %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

// LockByID is only meaningful inside a transaction. Taking the row lock
// before a dependent-row check keeps a concurrent booking from slipping its
// ticket in between the check and a following delete: the booking's counter
// UPDATE waits on this lock and, once the delete commits, finds no row.
func (r *screeningRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	query := `SELECT id FROM screenings WHERE id = $1 FOR UPDATE`

	var locked uuid.UUID
	err := r.db.QueryRow(ctx, query, id).Scan(&locked)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("lock screening %s: %w", id.String(), ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock screening row",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("lock screening %s: %w", id.String(), err)
	}

	return nil
}

// AdjustSeats is a single conditional UPDATE, never a read-modify-write
// pair. The WHERE clause keeps the counter inside [0, MaxSeats]; a zero-row
// result is classified with an existence probe so the caller can tell
// "sold out" apart from "no such screening".
func (r *screeningRepository) AdjustSeats(ctx context.Context, id uuid.UUID, delta int) error {
	query := `
		UPDATE screenings
		SET remaining_seats = remaining_seats + $2, updated_at = NOW()
		WHERE id = $1
		  AND remaining_seats + $2 >= 0
		  AND remaining_seats + $2 <= $3
	`

	result, err := r.db.Exec(ctx, query, id, delta, entity.MaxSeats)
	if err != nil {
		r.log.Error("Failed to adjust seats",
			zap.Error(err),
			zap.String("screening_id", id.String()),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("adjust seats for screening %s by %d: %w", id.String(), delta, err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		probeErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM screenings WHERE id = $1)`, id).Scan(&exists)
		if probeErr != nil {
			return fmt.Errorf("adjust seats for screening %s: %w", id.String(), probeErr)
		}
		if exists {
			return fmt.Errorf("adjust seats for screening %s by %d: %w", id.String(), delta, ErrNoSeatsAvailable)
		}
		return fmt.Errorf("adjust seats for screening %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
