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

type AccountService interface {
	Create(ctx context.Context, req *request.CreateAccountRequest) (*response.AccountResponse, error)
	GetByID(ctx context.Context, accountID string) (*response.AccountResponse, error)
	GetByLogin(ctx context.Context, login string) (*response.AccountResponse, error)
	GetAllByVariant(ctx context.Context, variant string) ([]response.AccountResponse, error)
	SearchByLoginPrefix(ctx context.Context, variant string, prefix string) ([]response.AccountResponse, error)
	Update(ctx context.Context, accountID string, req *request.UpdateAccountRequest) (*response.AccountResponse, error)
	SetActive(ctx context.Context, accountID string, active bool) error
	Delete(ctx context.Context, accountID string, expectedVariant string) error
}

type accountService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAccountService(repo *repository.Repository, log *zap.Logger) AccountService {
	return &accountService{
		repo: repo,
		log:  log.With(zap.String("service", "account")),
	}
}

func parseVariant(value string) (entity.AccountVariant, error) {
	switch entity.AccountVariant(value) {
	case entity.VariantClient, entity.VariantStaff, entity.VariantAdmin:
		return entity.AccountVariant(value), nil
	default:
		return "", fmt.Errorf("variant %q: %w", value, entity.ErrVariantNotRecognized)
	}
}

func (s *accountService) Create(ctx context.Context, req *request.CreateAccountRequest) (*response.AccountResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create account validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	variant, err := parseVariant(req.Variant)
	if err != nil {
		return nil, err
	}

	// Staff accounts may come without local credentials; client and admin
	// accounts must not.
	var passwordHash *string
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = &hash
	} else if variant != entity.VariantStaff {
		return nil, fmt.Errorf("%w: password is required for %s accounts", ErrValidation, variant)
	}

	now := time.Now()
	account := &entity.Account{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Login:        req.Login,
		PasswordHash: passwordHash,
		Active:       true,
		Variant:      variant,
	}

	if err := s.repo.Account.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("login", account.Login),
		zap.String("variant", string(variant)),
	)

	resp := response.AccountToResponse(account)
	return &resp, nil
}

func (s *accountService) GetByID(ctx context.Context, accountID string) (*response.AccountResponse, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid account ID %s", ErrValidation, accountID)
	}

	account, err := s.repo.Account.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s: %w", accountID, repository.ErrNotFound)
	}

	// Read paths return the typed variant, not the generic record.
	typed, err := entity.ToTyped(account)
	if err != nil {
		return nil, err
	}

	resp := response.TypedAccountToResponse(typed)
	return &resp, nil
}

func (s *accountService) GetByLogin(ctx context.Context, login string) (*response.AccountResponse, error) {
	account, err := s.repo.Account.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account with login %s: %w", login, repository.ErrNotFound)
	}

	typed, err := entity.ToTyped(account)
	if err != nil {
		return nil, err
	}

	resp := response.TypedAccountToResponse(typed)
	return &resp, nil
}

func (s *accountService) GetAllByVariant(ctx context.Context, variant string) ([]response.AccountResponse, error) {
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.Account.FindAllByVariant(ctx, v)
	if err != nil {
		return nil, err
	}

	return accountsToResponses(accounts)
}

func (s *accountService) SearchByLoginPrefix(ctx context.Context, variant string, prefix string) ([]response.AccountResponse, error) {
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.Account.FindAllByVariantWithLoginPrefix(ctx, v, prefix)
	if err != nil {
		return nil, err
	}

	return accountsToResponses(accounts)
}

func accountsToResponses(accounts []*entity.Account) ([]response.AccountResponse, error) {
	responses := make([]response.AccountResponse, len(accounts))
	for i, account := range accounts {
		typed, err := entity.ToTyped(account)
		if err != nil {
			return nil, err
		}
		responses[i] = response.TypedAccountToResponse(typed)
	}
	return responses, nil
}

// Update is a full-record replace keyed by id. The variant is immutable; the
// stored discriminator always wins.
func (s *accountService) Update(ctx context.Context, accountID string, req *request.UpdateAccountRequest) (*response.AccountResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update account validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid account ID %s", ErrValidation, accountID)
	}

	account, err := s.repo.Account.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("update account %s: %w", accountID, repository.ErrNotFound)
	}

	account.Login = req.Login
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = &hash
	}
	account.UpdatedAt = time.Now()

	// Defensive re-validation before the replace hits the store.
	if errs := utils.ValidateStruct(account); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	if err := s.repo.Account.Update(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("Account updated",
		zap.String("account_id", accountID),
		zap.String("login", account.Login),
	)

	resp := response.AccountToResponse(account)
	return &resp, nil
}

// SetActive flips the active flag. The generic record is re-dispatched
// through the mapper so the flip always lands on the correct typed variant
// before persisting.
func (s *accountService) SetActive(ctx context.Context, accountID string, active bool) error {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return fmt.Errorf("%w: invalid account ID %s", ErrValidation, accountID)
	}

	account, err := s.repo.Account.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("set active on account %s: %w", accountID, repository.ErrNotFound)
	}

	typed, err := entity.ToTyped(account)
	if err != nil {
		return err
	}

	switch {
	case typed.Client != nil:
		typed.Client.Active = active
	case typed.Staff != nil:
		typed.Staff.Active = active
	case typed.Admin != nil:
		typed.Admin.Active = active
	}

	updated, err := entity.FromTyped(typed)
	if err != nil {
		return err
	}

	if err := s.repo.Account.SetActive(ctx, updated.ID, active); err != nil {
		return err
	}

	s.log.Info("Account active flag changed",
		zap.String("account_id", accountID),
		zap.String("variant", string(updated.Variant)),
		zap.Bool("active", active),
	)
	return nil
}

func (s *accountService) Delete(ctx context.Context, accountID string, expectedVariant string) error {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return fmt.Errorf("%w: invalid account ID %s", ErrValidation, accountID)
	}

	variant, err := parseVariant(expectedVariant)
	if err != nil {
		return err
	}

	// Tickets keep referencing the account by id; no cascade.
	return s.repo.Account.Delete(ctx, id, variant)
}
