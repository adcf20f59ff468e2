package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/domain/auth"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hr-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

const oauthStateCookie = "oauth_state"

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResp, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResp.RefreshToken, tokenResp.RefreshExpiresAt))

	slog.Info("User logged in", "user_id", tokenResp.User.ID)
	response.SuccessWithMessage(w, "Login successful", tokenResp)
}

// RefreshToken implements AuthHandler. The refresh token comes from the
// HttpOnly cookie set at login.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.Unauthorized(w, "Refresh token missing")
		return
	}

	tokenResp, err := a.authService.RefreshToken(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResp.RefreshToken, tokenResp.RefreshExpiresAt))

	response.Success(w, tokenResp)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Expire the cookie
	http.SetCookie(w, a.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix()))

	response.SuccessWithMessage(w, "Logged out", nil)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ChangePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.ChangePassword(r.Context(), req); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed", nil)
}

// Profile implements AuthHandler.
func (a *AuthHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.authService.Profile(r.Context(), middleware.UserID(r))
	if err != nil {
		slog.Error("Profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// StreamToken implements AuthHandler.
func (a *AuthHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	tokenResp, err := a.authService.StreamToken(r.Context(), middleware.UserID(r))
	if err != nil {
		slog.Error("StreamToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResp)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	url, state, err := a.authService.GoogleRedirect(r.Context())
	if err != nil {
		slog.Error("LoginWithGoogle service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		response.HandleError(w, auth.ErrOAuthStateMismatch)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}

	tokenResp, err := a.authService.GoogleCallback(r.Context(), code)
	if err != nil {
		slog.Error("OAuthCallbackGoogle service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResp.RefreshToken, tokenResp.RefreshExpiresAt))

	response.SuccessWithMessage(w, "Login successful", tokenResp)
}
