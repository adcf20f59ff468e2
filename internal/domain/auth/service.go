package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	Profile(ctx context.Context, userID string) (ProfileEntry, error)
	StreamToken(ctx context.Context, userID string) (StreamTokenResponse, error)

	// Google OAuth2 flow
	GoogleRedirect(ctx context.Context) (url string, state string, err error)
	GoogleCallback(ctx context.Context, code string) (TokenResponse, error)
}
