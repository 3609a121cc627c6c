package response

import (
	"time"

	"cinema-tickets/internal/data/entity"
)

type AccountResponse struct {
	ID        string                `json:"id"`
	Login     string                `json:"login"`
	Active    bool                  `json:"active"`
	Variant   entity.AccountVariant `json:"variant"`
	CreatedAt time.Time             `json:"created_at"`
}

// AccountToResponse shapes a generic stored record. The password hash never
// leaves the service layer.
func AccountToResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Login:     account.Login,
		Active:    account.Active,
		Variant:   account.Variant,
		CreatedAt: account.CreatedAt,
	}
}

// TypedAccountToResponse shapes a role variant produced by the mapper.
func TypedAccountToResponse(typed *entity.TypedAccount) AccountResponse {
	switch {
	case typed.Client != nil:
		c := typed.Client
		return AccountResponse{ID: c.ID.String(), Login: c.Login, Active: c.Active, Variant: entity.VariantClient, CreatedAt: c.CreatedAt}
	case typed.Staff != nil:
		s := typed.Staff
		return AccountResponse{ID: s.ID.String(), Login: s.Login, Active: s.Active, Variant: entity.VariantStaff, CreatedAt: s.CreatedAt}
	default:
		a := typed.Admin
		return AccountResponse{ID: a.ID.String(), Login: a.Login, Active: a.Active, Variant: entity.VariantAdmin, CreatedAt: a.CreatedAt}
	}
}
