package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens. Tokens are stored hashed.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error

	// PurgeExpired deletes tokens that expired or were revoked before now and returns how many.
	PurgeExpired(ctx context.Context) (int64, error)
}
