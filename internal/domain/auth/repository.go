package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists refresh tokens hashed, never in plain text.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID string, token string, expiresAt time.Time) error
	// IsRevoked reports whether the token is revoked, expired, or unknown.
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
