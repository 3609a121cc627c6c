package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	VariantKey   contextKey = "variant"
)

func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountIDVal := ctx.Value(AccountIDKey)
	if accountIDVal == nil {
		return uuid.Nil, false
	}

	accountIDStr, ok := accountIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	accountID, err := uuid.Parse(accountIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return accountID, true
}

func GetVariantFromContext(ctx context.Context) (string, bool) {
	variantVal := ctx.Value(VariantKey)
	if variantVal == nil {
		return "", false
	}

	variant, ok := variantVal.(string)
	return variant, ok
}

func SetAccountContext(ctx context.Context, accountID uuid.UUID, variant string) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, accountID.String())
	ctx = context.WithValue(ctx, VariantKey, variant)
	return ctx
}
