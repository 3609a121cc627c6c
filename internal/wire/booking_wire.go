package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/booking - Book a ticket (compound operation)
		r.Post("/api/booking", bookingHandler.Book)

		// DELETE /api/booking/{id} - Release a ticket (compound operation)
		r.Delete("/api/booking/{id}", bookingHandler.Release)
	})
}
