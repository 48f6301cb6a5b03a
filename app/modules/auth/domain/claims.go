package authdomain

import (
	"context"
	"time"
)

// TokenTypeAccess marks tokens that may call the API.
const TokenTypeAccess = "access"

// Claims represents the domain model for authentication claims.
type Claims struct {
	UserID    int64
	Role      Role
	TokenType string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID int64
	Role   Role
}

type callerKey struct{}

// WithCaller stores the caller in ctx.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller stored by the auth middleware.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	return caller, ok
}
