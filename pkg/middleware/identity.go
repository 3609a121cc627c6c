package middleware

import (
	"net/http"

	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity reads the account id and variant the upstream authentication
// layer verified and forwarded. Credential checking happens there, never
// here; this middleware only rejects requests that arrive without a usable
// identity.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountHeader := r.Header.Get("X-Account-ID")
			if accountHeader == "" {
				utils.ResponseUnauthorized(w, "Missing account identity")
				return
			}

			accountID, err := uuid.Parse(accountHeader)
			if err != nil {
				logger.Warn("Malformed account identity header",
					zap.String("value", accountHeader))
				utils.ResponseUnauthorized(w, "Invalid account identity")
				return
			}

			variant := r.Header.Get("X-Account-Variant")

			ctx := utils.SetAccountContext(r.Context(), accountID, variant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireVariant - middleware cek role variant
func RequireVariant(logger *zap.Logger, variants ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(variants))
	for _, v := range variants {
		allowed[v] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			variant, ok := utils.GetVariantFromContext(r.Context())
			if !ok || !allowed[variant] {
				logger.Warn("Variant guard rejected request",
					zap.String("variant", variant),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
