package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrOAuthEmailUnknown   = errors.New("google account is not linked to any user")
)
