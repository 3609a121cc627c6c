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

func seedAccount(t *testing.T, repos *repository.Repository, variant entity.AccountVariant, active bool) *entity.Account {
	t.Helper()
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	now := time.Now()
	account := &entity.Account{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Login:        "login-" + uuid.NewString()[:8],
		PasswordHash: &hash,
		Active:       active,
		Variant:      variant,
	}
	if err := repos.Account.Create(context.Background(), account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func seedScreening(t *testing.T, repos *repository.Repository, seats int, basePrice float64) *entity.Screening {
	t.Helper()
	now := time.Now()
	screening := &entity.Screening{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:          "Nosferatu",
		BasePrice:      basePrice,
		Room:           7,
		RemainingSeats: seats,
	}
	if err := repos.Screening.Create(context.Background(), screening); err != nil {
		t.Fatalf("seed screening: %v", err)
	}
	return screening
}

func remainingSeats(t *testing.T, repos *repository.Repository, id uuid.UUID) int {
	t.Helper()
	screening, err := repos.Screening.FindByID(context.Background(), id)
	if err != nil || screening == nil {
		t.Fatalf("find screening: %v", err)
	}
	return screening.RemainingSeats
}

func TestBookDecrementsSeatsAndSnapshotsPrice(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	client := seedAccount(t, repos, entity.VariantClient, true)
	screening := seedScreening(t, repos, 45, 25.00)

	showTime := time.Date(2026, 9, 12, 20, 30, 0, 0, time.UTC)
	ticket, err := svc.Book(context.Background(), client.ID.String(), &request.BookTicketRequest{
		ScreeningID:   screening.ID.String(),
		ScreeningTime: showTime,
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if ticket.Price != 25.00 {
		t.Errorf("ticket price = %.2f, want 25.00", ticket.Price)
	}
	if !ticket.ScreeningTime.Equal(showTime) {
		t.Errorf("ticket screening time = %v, want %v", ticket.ScreeningTime, showTime)
	}
	if got := remainingSeats(t, repos, screening.ID); got != 44 {
		t.Errorf("remaining seats = %d, want 44", got)
	}

	// Later base-price changes must not touch the snapshot.
	stored, _ := repos.Screening.FindByID(context.Background(), screening.ID)
	stored.BasePrice = 30.00
	if err := repos.Screening.Update(context.Background(), stored); err != nil {
		t.Fatalf("update screening: %v", err)
	}
	found, err := repos.Ticket.FindByID(context.Background(), uuid.MustParse(ticket.ID))
	if err != nil || found == nil {
		t.Fatalf("find ticket: %v", err)
	}
	if found.Price != 25.00 {
		t.Errorf("snapshot price = %.2f after base-price change, want 25.00", found.Price)
	}
}

func TestBookThenReleaseRoundTrip(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	client := seedAccount(t, repos, entity.VariantClient, true)
	screening := seedScreening(t, repos, 45, 25.00)

	ticket, err := svc.Book(context.Background(), client.ID.String(), &request.BookTicketRequest{
		ScreeningID:   screening.ID.String(),
		ScreeningTime: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if got := remainingSeats(t, repos, screening.ID); got != 44 {
		t.Fatalf("remaining seats after book = %d, want 44", got)
	}

	if err := svc.Release(context.Background(), ticket.ID); err != nil {
		t.Fatalf("Release: %v", err)
	}

	if got := remainingSeats(t, repos, screening.ID); got != 45 {
		t.Errorf("remaining seats after release = %d, want 45", got)
	}

	found, err := repos.Ticket.FindByID(context.Background(), uuid.MustParse(ticket.ID))
	if err != nil {
		t.Fatalf("find ticket: %v", err)
	}
	if found != nil {
		t.Error("ticket still present after release")
	}
}

func TestBookInactiveAccountLeavesNoPartialWrite(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	inactive := seedAccount(t, repos, entity.VariantClient, false)
	screening := seedScreening(t, repos, 45, 25.00)

	_, err := svc.Book(context.Background(), inactive.ID.String(), &request.BookTicketRequest{
		ScreeningID:   screening.ID.String(),
		ScreeningTime: time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("err = %v, want ErrAccountInactive", err)
	}

	if got := remainingSeats(t, repos, screening.ID); got != 45 {
		t.Errorf("remaining seats = %d, want untouched 45", got)
	}
	tickets, _ := repos.Ticket.FindAll(context.Background())
	if len(tickets) != 0 {
		t.Errorf("ticket collection has %d entries, want 0", len(tickets))
	}
}

func TestBookMissingAccount(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	screening := seedScreening(t, repos, 45, 25.00)

	_, err := svc.Book(context.Background(), uuid.NewString(), &request.BookTicketRequest{
		ScreeningID:   screening.ID.String(),
		ScreeningTime: time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
	if got := remainingSeats(t, repos, screening.ID); got != 45 {
		t.Errorf("remaining seats = %d, want untouched 45", got)
	}
}

func TestBookMissingScreening(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	client := seedAccount(t, repos, entity.VariantClient, true)

	_, err := svc.Book(context.Background(), client.ID.String(), &request.BookTicketRequest{
		ScreeningID:   uuid.NewString(),
		ScreeningTime: time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrScreeningNotFound) {
		t.Fatalf("err = %v, want ErrScreeningNotFound", err)
	}
	tickets, _ := repos.Ticket.FindAll(context.Background())
	if len(tickets) != 0 {
		t.Errorf("ticket collection has %d entries, want 0", len(tickets))
	}
}

func TestBookSoldOutScreening(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	client := seedAccount(t, repos, entity.VariantClient, true)
	screening := seedScreening(t, repos, 0, 25.00)

	_, err := svc.Book(context.Background(), client.ID.String(), &request.BookTicketRequest{
		ScreeningID:   screening.ID.String(),
		ScreeningTime: time.Now().Add(time.Hour),
	})
	if !errors.Is(err, repository.ErrNoSeatsAvailable) {
		t.Fatalf("err = %v, want ErrNoSeatsAvailable", err)
	}
	if got := remainingSeats(t, repos, screening.ID); got != 0 {
		t.Errorf("remaining seats = %d, want 0", got)
	}
}

func TestReleaseMissingTicket(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	err := svc.Release(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("err = %v, want ErrTicketNotFound", err)
	}
}

func TestConcurrentBookingNeverOversells(t *testing.T) {
	repos := newFakeRepository()
	svc := NewBookingService(repos, zap.NewNop())

	client := seedAccount(t, repos, entity.VariantClient, true)
	screening := seedScreening(t, repos, 45, 25.00)

	const attempts = 80
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), client.ID.String(), &request.BookTicketRequest{
				ScreeningID:   screening.ID.String(),
				ScreeningTime: time.Now().Add(time.Hour),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var booked, refused int
	for err := range results {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, repository.ErrNoSeatsAvailable):
			refused++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if booked != 45 {
		t.Errorf("booked = %d, want exactly 45", booked)
	}
	if refused != attempts-45 {
		t.Errorf("refused = %d, want %d", refused, attempts-45)
	}
	if got := remainingSeats(t, repos, screening.ID); got != 0 {
		t.Errorf("remaining seats = %d, want 0", got)
	}
	tickets, _ := repos.Ticket.FindAll(context.Background())
	if len(tickets) != 45 {
		t.Errorf("ticket count = %d, want 45", len(tickets))
	}
}
