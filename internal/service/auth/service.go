package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/domain/auth"
	"github.com/kantorkita/hr-backend-go/internal/domain/user"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"github.com/kantorkita/hr-backend-go/internal/pkg/jwt"
	"github.com/kantorkita/hr-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
	google oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
		google:                 googleService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive() {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	return a.issueTokens(ctx, userData)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := a.Service.GenerateAccessToken(
		userData.ID, userData.Email, userData.FullName, userData.Role,
	)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := a.RefreshTokenRepository.Store(ctx, userData.ID, refreshToken, time.Unix(refreshExpiresAt, 0)); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
		TokenType:        "Bearer",
		ExpiresAt:        accessExpiresAt,
		User: auth.ProfileEntry{
			ID:           userData.ID,
			FullName:     userData.FullName,
			Email:        userData.Email,
			Role:         string(userData.Role),
			PositionName: userData.PositionName,
		},
	}, nil
}

// RefreshToken implements auth.AuthService. The presented token is rotated:
// validated, revoked, and replaced by a fresh pair.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	token, err := a.Service.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := token.Get("type")
	if tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.RefreshTokenRepository.IsRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !userData.IsActive() {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	if err := a.RefreshTokenRepository.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return a.issueTokens(ctx, userData)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return a.RefreshTokenRepository.Revoke(ctx, refreshToken)
}

// ChangePassword implements auth.AuthService. All refresh tokens of the user
// are revoked afterwards.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	userData, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.OldPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	if err := a.UserRepository.UpdatePassword(ctx, req.UserID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return a.RefreshTokenRepository.RevokeAllForUser(ctx, req.UserID)
}

// Profile implements auth.AuthService.
func (a *AuthServiceImpl) Profile(ctx context.Context, userID string) (auth.ProfileEntry, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.ProfileEntry{}, err
	}

	return auth.ProfileEntry{
		ID:           userData.ID,
		FullName:     userData.FullName,
		Email:        userData.Email,
		Role:         string(userData.Role),
		PositionName: userData.PositionName,
	}, nil
}

// StreamToken implements auth.AuthService.
func (a *AuthServiceImpl) StreamToken(ctx context.Context, userID string) (auth.StreamTokenResponse, error) {
	token, expiresIn, err := a.Service.GenerateStreamToken(userID)
	if err != nil {
		return auth.StreamTokenResponse{}, fmt.Errorf("failed to generate stream token: %w", err)
	}

	return auth.StreamTokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

// GoogleRedirect implements auth.AuthService.
func (a *AuthServiceImpl) GoogleRedirect(ctx context.Context) (string, string, error) {
	state := a.google.GenerateState()
	if state == "" {
		return "", "", fmt.Errorf("failed to generate oauth state")
	}
	return a.google.RedirectURL(state), state, nil
}

// GoogleCallback implements auth.AuthService. Only accounts whose email is
// already registered may sign in with Google.
func (a *AuthServiceImpl) GoogleCallback(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := a.google.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	account, err := a.google.FetchUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google account: %w", err)
	}
	if !account.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrOAuthEmailUnknown
	}

	userData, err := a.UserRepository.LinkGoogleAccount(ctx, account.GoogleID, account.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrOAuthEmailUnknown
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
	}
	if !userData.IsActive() {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	return a.issueTokens(ctx, userData)
}
