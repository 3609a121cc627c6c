package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByLogin(ctx context.Context, login string) (*entity.Account, error)
	FindAllByVariant(ctx context.Context, variant entity.AccountVariant) ([]*entity.Account, error)
	FindAllByVariantWithLoginPrefix(ctx context.Context, variant entity.AccountVariant, prefix string) ([]*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID, expectedVariant entity.AccountVariant) error
}

type accountRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAccountRepository(db database.Querier, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

const accountColumns = `id, login, password_hash, active, variant, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var account entity.Account
	err := row.Scan(
		&account.ID,
		&account.Login,
		&account.PasswordHash,
		&account.Active,
		&account.Variant,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account record. Login uniqueness is enforced by the
// database index, not an application-level check, so concurrent inserts of
// the same login cannot race past each other.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, login, password_hash, active, variant, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Login,
		account.PasswordHash,
		account.Active,
		account.Variant,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if isUniqueViolation(err) {
		r.log.Warn("Duplicate login on create",
			zap.String("login", account.Login),
			zap.String("variant", string(account.Variant)),
		)
		return fmt.Errorf("create account %s: %w", account.Login, ErrDuplicateLogin)
	}
	if err != nil {
		r.log.Error("Failed to create account",
			zap.Error(err),
			zap.String("login", account.Login),
		)
		return fmt.Errorf("create account %s: %w", account.Login, err)
	}

	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by ID",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return nil, fmt.Errorf("find account by ID %s: %w", id.String(), err)
	}

	return account, nil
}

func (r *accountRepository) FindByLogin(ctx context.Context, login string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE login = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, login))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by login",
			zap.Error(err),
			zap.String("login", login),
		)
		return nil, fmt.Errorf("find account by login %s: %w", login, err)
	}

	return account, nil
}

func (r *accountRepository) FindAllByVariant(ctx context.Context, variant entity.AccountVariant) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE variant = $1 ORDER BY login`

	rows, err := r.db.Query(ctx, query, variant)
	if err != nil {
		r.log.Error("Failed to find accounts by variant",
			zap.Error(err),
			zap.String("variant", string(variant)),
		)
		return nil, fmt.Errorf("find accounts by variant %s: %w", variant, err)
	}
	defer rows.Close()

	return collectAccounts(rows, r.log)
}

// FindAllByVariantWithLoginPrefix matches logins case-sensitively against
// the given prefix. LIKE metacharacters in the prefix are escaped so they
// match literally.
func (r *accountRepository) FindAllByVariantWithLoginPrefix(ctx context.Context, variant entity.AccountVariant, prefix string) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE variant = $1 AND login LIKE $2 ORDER BY login`

	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)

	rows, err := r.db.Query(ctx, query, variant, escaped+"%")
	if err != nil {
		r.log.Error("Failed to find accounts by login prefix",
			zap.Error(err),
			zap.String("variant", string(variant)),
			zap.String("prefix", prefix),
		)
		return nil, fmt.Errorf("find %s accounts by login prefix %s: %w", variant, prefix, err)
	}
	defer rows.Close()

	return collectAccounts(rows, r.log)
}

func collectAccounts(rows pgx.Rows, log *zap.Logger) ([]*entity.Account, error) {
	var accounts []*entity.Account
	for rows.Next() {
		var account entity.Account
		err := rows.Scan(
			&account.ID,
			&account.Login,
			&account.PasswordHash,
			&account.Active,
			&account.Variant,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan account row", zap.Error(err))
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

// Update performs a full replace keyed by id. The discriminator is immutable
// after creation, so it is not part of the SET list.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	query := `
		UPDATE accounts
		SET login = $2, password_hash = $3, active = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		account.ID,
		account.Login,
		account.PasswordHash,
		account.Active,
		account.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("update account %s: %w", account.ID.String(), ErrDuplicateLogin)
	}
	if err != nil {
		r.log.Error("Failed to update account",
			zap.Error(err),
			zap.String("account_id", account.ID.String()),
		)
		return fmt.Errorf("update account %s: %w", account.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update account %s: %w", account.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *accountRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE accounts SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set account active flag",
			zap.Error(err),
			zap.String("account_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set account %s active=%t: %w", id.String(), active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("set account %s active=%t: %w", id.String(), active, ErrNotFound)
	}

	return nil
}

// Delete removes the account only when its stored discriminator matches
// expectedVariant. A zero-row result is classified by probing the row again:
// existing row means variant mismatch, no row means not found.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID, expectedVariant entity.AccountVariant) error {
	query := `DELETE FROM accounts WHERE id = $1 AND variant = $2`

	result, err := r.db.Exec(ctx, query, id, expectedVariant)
	if err != nil {
		r.log.Error("Failed to delete account",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return fmt.Errorf("delete account %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		probeErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
		if probeErr != nil {
			return fmt.Errorf("delete account %s: %w", id.String(), probeErr)
		}
		if exists {
			r.log.Warn("Account delete blocked by variant mismatch",
				zap.String("account_id", id.String()),
				zap.String("expected_variant", string(expectedVariant)),
			)
			return fmt.Errorf("delete account %s as %s: %w", id.String(), expectedVariant, ErrVariantMismatch)
		}
		return fmt.Errorf("delete account %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Account deleted",
		zap.String("account_id", id.String()),
		zap.String("variant", string(expectedVariant)),
	)
	return nil
}
