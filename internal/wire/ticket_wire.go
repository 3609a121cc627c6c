package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// GET /api/tickets/mine - Own booking history
		r.Get("/api/tickets/mine", ticketHandler.GetMyTickets)

		// PUT /api/tickets/{id} - Reschedule (time only)
		r.Put("/api/tickets/{id}", ticketHandler.RescheduleTicket)
	})

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.RequireVariant(log, "staff", "admin"))

		// GET /api/tickets - All tickets
		r.Get("/api/tickets", ticketHandler.GetAllTickets)

		// GET /api/tickets/{id} - Ticket detail
		r.Get("/api/tickets/{id}", ticketHandler.GetTicketByID)
	})
}
