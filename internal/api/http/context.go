package http

import (
	"context"
	"errors"

	"bloodlink-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user-claims"

// ContextWithClaims stores validated token claims for downstream handlers.
func ContextWithClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the claims placed by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	if !ok || claims == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return claims, nil
}
