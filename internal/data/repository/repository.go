package repository

import (
	"context"
	"fmt"

	"cinema-tickets/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Account   AccountRepository
	Screening ScreeningRepository
	Ticket    TicketRepository

	// Tx runs compound operations as one atomic unit of work.
	Tx TxManager
}

// TxManager wraps a closure in a single database transaction. The closure
// receives a Repository bound to the transaction; its writes become visible
// all at once on commit, or not at all.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositoryWithQuerier(db, log)
	repo.Tx = &pgxTxManager{db: db, log: log}
	return repo
}

func newRepositoryWithQuerier(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Account:   NewAccountRepository(q, log),
		Screening: NewScreeningRepository(q, log),
		Ticket:    NewTicketRepository(q, log),
	}
}

type pgxTxManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(r *Repository) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		m.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	// pgx.Tx satisfies database.Querier, so the per-entity repositories run
	// unchanged inside the transaction. Nested WithinTx is not supported; the
	// tx-bound Repository carries no TxManager.
	txRepo := newRepositoryWithQuerier(tx, m.log)

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			m.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		m.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
