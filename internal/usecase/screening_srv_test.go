package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestScreeningCreateValidatesRanges(t *testing.T) {
	repos := newFakeRepository()
	svc := NewScreeningService(repos, zap.NewNop())

	tests := []struct {
		name string
		req  request.CreateScreeningRequest
	}{
		{"empty title", request.CreateScreeningRequest{Title: "", BasePrice: 10, Room: 1, Seats: 50}},
		{"price too high", request.CreateScreeningRequest{Title: "Alien", BasePrice: 101, Room: 1, Seats: 50}},
		{"room zero", request.CreateScreeningRequest{Title: "Alien", BasePrice: 10, Room: 0, Seats: 50}},
		{"room too high", request.CreateScreeningRequest{Title: "Alien", BasePrice: 10, Room: 31, Seats: 50}},
		{"seats over capacity", request.CreateScreeningRequest{Title: "Alien", BasePrice: 10, Room: 1, Seats: 121}},
		{"negative seats", request.CreateScreeningRequest{Title: "Alien", BasePrice: 10, Room: 1, Seats: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestScreeningDeleteBlockedByDependentTickets(t *testing.T) {
	repos := newFakeRepository()
	screeningSvc := NewScreeningService(repos, zap.NewNop())
	bookingSvc := NewBookingService(repos, zap.NewNop())

	client := seedAccount(t, repos, entity.VariantClient, true)
	screening := seedScreening(t, repos, 45, 25.00)

	ticket, err := bookingSvc.Book(context.Background(), client.ID.String(), &request.BookTicketRequest{
		ScreeningID:   screening.ID.String(),
		ScreeningTime: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	err = screeningSvc.Delete(context.Background(), screening.ID.String())
	if !errors.Is(err, repository.ErrHasDependentTickets) {
		t.Fatalf("err = %v, want ErrHasDependentTickets", err)
	}

	// Screening must still exist after the rejected delete.
	if _, err := screeningSvc.GetByID(context.Background(), screening.ID.String()); err != nil {
		t.Fatalf("screening gone after rejected delete: %v", err)
	}

	// After releasing the last ticket, deletion goes through.
	if err := bookingSvc.Release(context.Background(), ticket.ID); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := screeningSvc.Delete(context.Background(), screening.ID.String()); err != nil {
		t.Fatalf("Delete after release: %v", err)
	}

	_, err = screeningSvc.GetByID(context.Background(), screening.ID.String())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
}

type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

type loggedScreeningRepo struct {
	*fakeScreeningRepo
	log *opLog
}

func (r *loggedScreeningRepo) LockByID(ctx context.Context, id uuid.UUID) error {
	r.log.add("lock screening")
	return r.fakeScreeningRepo.LockByID(ctx, id)
}

func (r *loggedScreeningRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.log.add("delete screening")
	return r.fakeScreeningRepo.Delete(ctx, id)
}

type loggedTicketRepo struct {
	*fakeTicketRepo
	log *opLog
}

func (r *loggedTicketRepo) CountByScreening(ctx context.Context, id uuid.UUID) (int64, error) {
	r.log.add("count tickets")
	return r.fakeTicketRepo.CountByScreening(ctx, id)
}

// The row lock must be taken before the dependent-ticket count. Counting
// first would let a concurrent booking insert its ticket after the count saw
// zero, leaving that ticket referencing a deleted screening.
func TestScreeningDeleteLocksRowBeforeDependencyCheck(t *testing.T) {
	log := &opLog{}
	repos := &repository.Repository{
		Account:   newFakeAccountRepo(),
		Screening: &loggedScreeningRepo{fakeScreeningRepo: newFakeScreeningRepo(), log: log},
		Ticket:    &loggedTicketRepo{fakeTicketRepo: newFakeTicketRepo(), log: log},
	}
	repos.Tx = &passthroughTx{repos: repos}
	svc := NewScreeningService(repos, zap.NewNop())

	screening := seedScreening(t, repos, 45, 25.00)

	if err := svc.Delete(context.Background(), screening.ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := []string{"lock screening", "count tickets", "delete screening"}
	if len(log.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", log.ops, want)
	}
	for i := range want {
		if log.ops[i] != want[i] {
			t.Fatalf("op[%d] = %q, want %q (full sequence %v)", i, log.ops[i], want[i], log.ops)
		}
	}
}

func TestScreeningDeleteMissing(t *testing.T) {
	repos := newFakeRepository()
	svc := NewScreeningService(repos, zap.NewNop())

	err := svc.Delete(context.Background(), uuid.NewString())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestScreeningUpdatePreservesCounter(t *testing.T) {
	repos := newFakeRepository()
	screeningSvc := NewScreeningService(repos, zap.NewNop())
	bookingSvc := NewBookingService(repos, zap.NewNop())

	client := seedAccount(t, repos, entity.VariantClient, true)
	screening := seedScreening(t, repos, 45, 25.00)

	if _, err := bookingSvc.Book(context.Background(), client.ID.String(), &request.BookTicketRequest{
		ScreeningID:   screening.ID.String(),
		ScreeningTime: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	// Full-record replace while a booking already moved the counter.
	updated, err := screeningSvc.Update(context.Background(), screening.ID.String(), &request.UpdateScreeningRequest{
		Title:     "Nosferatu (director's cut)",
		BasePrice: 30.00,
		Room:      9,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "Nosferatu (director's cut)" || updated.Room != 9 {
		t.Errorf("update did not apply: %+v", updated)
	}
	if got := remainingSeats(t, repos, screening.ID); got != 44 {
		t.Errorf("remaining seats = %d after replace, want 44", got)
	}
}
