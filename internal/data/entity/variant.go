package entity

import (
	"errors"
	"fmt"
)

// ErrVariantNotRecognized is returned when a stored discriminator value is
// none of the known account variants.
var ErrVariantNotRecognized = errors.New("account variant not recognized")

// Client is a regular ticket-buying account.
type Client struct {
	Base
	Login        string
	PasswordHash *string
	Active       bool
}

// Staff manages screenings. Staff accounts may be provisioned without local
// credentials.
type Staff struct {
	Base
	Login        string
	PasswordHash *string
	Active       bool
}

// Admin manages accounts.
type Admin struct {
	Base
	Login        string
	PasswordHash *string
	Active       bool
}

// TypedAccount is the union of the three role variants. Exactly one field is
// non-nil after a successful conversion.
type TypedAccount struct {
	Client *Client
	Staff  *Staff
	Admin  *Admin
}

// Variant reports which variant the union holds.
func (t *TypedAccount) Variant() AccountVariant {
	switch {
	case t.Client != nil:
		return VariantClient
	case t.Staff != nil:
		return VariantStaff
	default:
		return VariantAdmin
	}
}

// ToTyped converts a stored generic record into the role variant named by its
// discriminator. Pure function; no side effects.
func ToTyped(account *Account) (*TypedAccount, error) {
	switch account.Variant {
	case VariantClient:
		return &TypedAccount{Client: &Client{
			Base:         account.Base,
			Login:        account.Login,
			PasswordHash: account.PasswordHash,
			Active:       account.Active,
		}}, nil
	case VariantStaff:
		return &TypedAccount{Staff: &Staff{
			Base:         account.Base,
			Login:        account.Login,
			PasswordHash: account.PasswordHash,
			Active:       account.Active,
		}}, nil
	case VariantAdmin:
		return &TypedAccount{Admin: &Admin{
			Base:         account.Base,
			Login:        account.Login,
			PasswordHash: account.PasswordHash,
			Active:       account.Active,
		}}, nil
	default:
		return nil, fmt.Errorf("discriminator %q: %w", account.Variant, ErrVariantNotRecognized)
	}
}

// FromTyped converts a role variant back into the generic stored record.
func FromTyped(typed *TypedAccount) (*Account, error) {
	switch {
	case typed.Client != nil:
		c := typed.Client
		return &Account{
			Base:         c.Base,
			Login:        c.Login,
			PasswordHash: c.PasswordHash,
			Active:       c.Active,
			Variant:      VariantClient,
		}, nil
	case typed.Staff != nil:
		s := typed.Staff
		return &Account{
			Base:         s.Base,
			Login:        s.Login,
			PasswordHash: s.PasswordHash,
			Active:       s.Active,
			Variant:      VariantStaff,
		}, nil
	case typed.Admin != nil:
		a := typed.Admin
		return &Account{
			Base:         a.Base,
			Login:        a.Login,
			PasswordHash: a.PasswordHash,
			Active:       a.Active,
			Variant:      VariantAdmin,
		}, nil
	default:
		return nil, fmt.Errorf("empty typed account: %w", ErrVariantNotRecognized)
	}
}
