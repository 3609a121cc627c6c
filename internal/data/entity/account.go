package entity

// AccountVariant is the stored discriminator for the three account roles.
type AccountVariant string

const (
	VariantClient AccountVariant = "client"
	VariantStaff  AccountVariant = "staff"
	VariantAdmin  AccountVariant = "admin"
)

// Account is the generic stored record shared by all three variants.
// PasswordHash is nil for accounts provisioned without local credentials.
type Account struct {
	Base
	Login        string         `db:"login" validate:"required,min=8,max=20,nowhitespace"`
	PasswordHash *string        `db:"password_hash" validate:"omitempty,min=8,max=200"`
	Active       bool           `db:"active"`
	Variant      AccountVariant `db:"variant" validate:"required,oneof=client staff admin"`
}
