package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	ticketHandler *adaptor.TicketHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/screenings - Browse the programme
	r.Get("/api/screenings", screeningHandler.GetAllScreenings)

	// GET /api/screenings/{id} - Screening detail with remaining seats
	r.Get("/api/screenings/{id}", screeningHandler.GetScreeningByID)

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.RequireVariant(log, "staff", "admin"))

		// POST /api/screenings - Create screening
		r.Post("/api/screenings", screeningHandler.CreateScreening)

		// PUT /api/screenings/{id} - Full-record replace (counter untouched)
		r.Put("/api/screenings/{id}", screeningHandler.UpdateScreening)

		// DELETE /api/screenings/{id} - Rejected while tickets reference it
		r.Delete("/api/screenings/{id}", screeningHandler.DeleteScreening)

		// GET /api/screenings/{id}/tickets - Tickets sold for a screening
		r.Get("/api/screenings/{id}/tickets", ticketHandler.GetTicketsByScreening)
	})
}
