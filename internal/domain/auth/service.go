package auth

import (
	"context"

	"github.com/cmlabs-hris/staff-attendance-go/internal/domain/user"
)

type AuthService interface {
	// Register creates an account. The first account becomes admin.
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// Me returns the user of the access token in ctx.
	Me(ctx context.Context) (user.UserResponse, error)
}
