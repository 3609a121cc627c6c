package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	// Create is only called from inside the booking coordinator's
	// transaction. Exposing a bare insert on the service surface would let
	// tickets appear without a matching seat decrement.
	Create(ctx context.Context, ticket *entity.Ticket) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindAll(ctx context.Context) ([]*entity.Ticket, error)
	FindAllByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Ticket, error)
	FindAllByScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.Ticket, error)
	CountByScreening(ctx context.Context, screeningID uuid.UUID) (int64, error)
	UpdateTime(ctx context.Context, id uuid.UUID, screeningTime time.Time) error

	// Delete removes the ticket and returns the screening id recorded on the
	// deleted row. It does not touch seat counts; compensation is the
	// coordinator's job.
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type ticketRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketRepository(db database.Querier, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, screening_time, price, account_id, screening_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.ScreeningTime,
		ticket.Price,
		ticket.AccountID,
		ticket.ScreeningID,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("account_id", ticket.AccountID.String()),
			zap.String("screening_id", ticket.ScreeningID.String()),
		)
		return fmt.Errorf("create ticket for account %s: %w", ticket.AccountID.String(), err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `
		SELECT id, screening_time, price, account_id, screening_id, created_at, updated_at
		FROM tickets
		WHERE id = $1
	`

	var ticket entity.Ticket
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.ScreeningTime,
		&ticket.Price,
		&ticket.AccountID,
		&ticket.ScreeningID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return &ticket, nil
}

func (r *ticketRepository) FindAll(ctx context.Context) ([]*entity.Ticket, error) {
	query := `
		SELECT id, screening_time, price, account_id, screening_id, created_at, updated_at
		FROM tickets
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all tickets", zap.Error(err))
		return nil, fmt.Errorf("find all tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows, r.log)
}

func (r *ticketRepository) FindAllByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT id, screening_time, price, account_id, screening_id, created_at, updated_at
		FROM tickets
		WHERE account_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error("Failed to find tickets by account",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return nil, fmt.Errorf("find tickets by account %s: %w", accountID.String(), err)
	}
	defer rows.Close()

	return collectTickets(rows, r.log)
}

func (r *ticketRepository) FindAllByScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT id, screening_time, price, account_id, screening_id, created_at, updated_at
		FROM tickets
		WHERE screening_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to find tickets by screening",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("find tickets by screening %s: %w", screeningID.String(), err)
	}
	defer rows.Close()

	return collectTickets(rows, r.log)
}

func collectTickets(rows pgx.Rows, log *zap.Logger) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.ScreeningTime,
			&ticket.Price,
			&ticket.AccountID,
			&ticket.ScreeningID,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) CountByScreening(ctx context.Context, screeningID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE screening_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, screeningID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets by screening",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return 0, fmt.Errorf("count tickets by screening %s: %w", screeningID.String(), err)
	}

	return count, nil
}

// UpdateTime reschedules the ticket. Time is the only mutable field; price
// stays the snapshot taken at booking.
func (r *ticketRepository) UpdateTime(ctx context.Context, id uuid.UUID, screeningTime time.Time) error {
	query := `UPDATE tickets SET screening_time = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, screeningTime)
	if err != nil {
		r.log.Error("Failed to update ticket time",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return fmt.Errorf("update ticket %s time: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update ticket %s time: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query := `DELETE FROM tickets WHERE id = $1 RETURNING screening_id`

	var screeningID uuid.UUID
	err := r.db.QueryRow(ctx, query, id).Scan(&screeningID)
	if err == pgx.ErrNoRows {
		return uuid.Nil, fmt.Errorf("delete ticket %s: %w", id.String(), ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to delete ticket",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return uuid.Nil, fmt.Errorf("delete ticket %s: %w", id.String(), err)
	}

	r.log.Info("Ticket deleted", zap.String("ticket_id", id.String()))
	return screeningID, nil
}
