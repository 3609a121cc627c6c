package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/accounts", func(r chi.Router) {
		r.Use(middleware.Identity(log))
		r.Use(middleware.RequireVariant(log, "admin"))

		// POST /api/accounts - Create account of any variant
		r.Post("/", accountHandler.CreateAccount)

		// GET /api/accounts/{id} - Typed account by id
		r.Get("/{id}", accountHandler.GetAccountByID)

		// GET /api/accounts/login/{login} - Typed account by login
		r.Get("/login/{login}", accountHandler.GetAccountByLogin)

		// GET /api/accounts/variant/{variant}?login_prefix= - List by variant
		r.Get("/variant/{variant}", accountHandler.GetAccountsByVariant)

		// PUT /api/accounts/{id} - Full-record replace
		r.Put("/{id}", accountHandler.UpdateAccount)

		// PUT /api/accounts/{id}/activate|deactivate - Flip active flag
		r.Put("/{id}/activate", accountHandler.ActivateAccount)
		r.Put("/{id}/deactivate", accountHandler.DeactivateAccount)

		// DELETE /api/accounts/{variant}/{id} - Variant-checked delete
		r.Delete("/{variant}/{id}", accountHandler.DeleteAccount)
	})
}
