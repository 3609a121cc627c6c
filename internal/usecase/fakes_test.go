package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. They reproduce the store contracts the SQL
// implementations provide: global login uniqueness, variant-checked delete,
// and the guarded seat-counter adjustment.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.accounts {
		if existing.Login == account.Login {
			return fmt.Errorf("create account %s: %w", account.Login, repository.ErrDuplicateLogin)
		}
	}
	copied := *account
	f.accounts[account.ID] = &copied
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) FindByLogin(ctx context.Context, login string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.Login == login {
			copied := *account
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindAllByVariant(ctx context.Context, variant entity.AccountVariant) ([]*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Account
	for _, account := range f.accounts {
		if account.Variant == variant {
			copied := *account
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) FindAllByVariantWithLoginPrefix(ctx context.Context, variant entity.AccountVariant, prefix string) ([]*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Account
	for _, account := range f.accounts {
		if account.Variant == variant && strings.HasPrefix(account.Login, prefix) {
			copied := *account
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.ID]; !ok {
		return fmt.Errorf("update account %s: %w", account.ID.String(), repository.ErrNotFound)
	}
	copied := *account
	f.accounts[account.ID] = &copied
	return nil
}

func (f *fakeAccountRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("set account %s active: %w", id.String(), repository.ErrNotFound)
	}
	account.Active = active
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID, expectedVariant entity.AccountVariant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("delete account %s: %w", id.String(), repository.ErrNotFound)
	}
	if account.Variant != expectedVariant {
		return fmt.Errorf("delete account %s as %s: %w", id.String(), expectedVariant, repository.ErrVariantMismatch)
	}
	delete(f.accounts, id)
	return nil
}

type fakeScreeningRepo struct {
	mu         sync.Mutex
	screenings map[uuid.UUID]*entity.Screening
}

func newFakeScreeningRepo() *fakeScreeningRepo {
	return &fakeScreeningRepo{screenings: make(map[uuid.UUID]*entity.Screening)}
}

func (f *fakeScreeningRepo) Create(ctx context.Context, screening *entity.Screening) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *screening
	f.screenings[screening.ID] = &copied
	return nil
}

func (f *fakeScreeningRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	screening, ok := f.screenings[id]
	if !ok {
		return nil, nil
	}
	copied := *screening
	return &copied, nil
}

func (f *fakeScreeningRepo) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Screening
	for _, screening := range f.screenings {
		copied := *screening
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeScreeningRepo) Update(ctx context.Context, screening *entity.Screening) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.screenings[screening.ID]
	if !ok {
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), repository.ErrNotFound)
	}
	// The replace never writes the counter, matching the SQL statement.
	stored.Title = screening.Title
	stored.BasePrice = screening.BasePrice
	stored.Room = screening.Room
	stored.UpdatedAt = screening.UpdatedAt
	return nil
}

func (f *fakeScreeningRepo) LockByID(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.screenings[id]; !ok {
		return fmt.Errorf("lock screening %s: %w", id.String(), repository.ErrNotFound)
	}
	return nil
}

func (f *fakeScreeningRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.screenings[id]; !ok {
		return fmt.Errorf("delete screening %s: %w", id.String(), repository.ErrNotFound)
	}
	delete(f.screenings, id)
	return nil
}

func (f *fakeScreeningRepo) AdjustSeats(ctx context.Context, id uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	screening, ok := f.screenings[id]
	if !ok {
		return fmt.Errorf("adjust seats for screening %s: %w", id.String(), repository.ErrNotFound)
	}
	next := screening.RemainingSeats + delta
	if next < 0 || next > entity.MaxSeats {
		return fmt.Errorf("adjust seats for screening %s by %d: %w", id.String(), delta, repository.ErrNoSeatsAvailable)
	}
	screening.RemainingSeats = next
	return nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]*entity.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]*entity.Ticket)}
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) FindAll(ctx context.Context) ([]*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Ticket
	for _, ticket := range f.tickets {
		copied := *ticket
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTicketRepo) FindAllByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Ticket
	for _, ticket := range f.tickets {
		if ticket.AccountID == accountID {
			copied := *ticket
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) FindAllByScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Ticket
	for _, ticket := range f.tickets {
		if ticket.ScreeningID == screeningID {
			copied := *ticket
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) CountByScreening(ctx context.Context, screeningID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, ticket := range f.tickets {
		if ticket.ScreeningID == screeningID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) UpdateTime(ctx context.Context, id uuid.UUID, screeningTime time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return fmt.Errorf("update ticket %s time: %w", id.String(), repository.ErrNotFound)
	}
	ticket.ScreeningTime = screeningTime
	return nil
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return uuid.Nil, fmt.Errorf("delete ticket %s: %w", id.String(), repository.ErrNotFound)
	}
	delete(f.tickets, id)
	return ticket.ScreeningID, nil
}

// passthroughTx satisfies repository.TxManager by running the closure
// against the shared fake repositories. The coordinator fails before its
// first write on every abort path exercised here, so no rollback emulation
// is needed.
type passthroughTx struct {
	repos *repository.Repository
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(r *repository.Repository) error) error {
	return fn(p.repos)
}

func newFakeRepository() *repository.Repository {
	repos := &repository.Repository{
		Account:   newFakeAccountRepo(),
		Screening: newFakeScreeningRepo(),
		Ticket:    newFakeTicketRepo(),
	}
	repos.Tx = &passthroughTx{repos: repos}
	return repos
}
