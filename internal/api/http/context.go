package http

import (
	"context"

	"rentalmotor-backend/internal/security"
)

type contextKey int

const claimsKey contextKey = iota

func withClaims(ctx context.Context, claims *security.AdminClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// AdminIDFromContext returns the authenticated admin set by the auth middleware
func AdminIDFromContext(ctx context.Context) (int32, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.AdminClaims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.AdminID, true
}
