package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/user"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
)

func roleFromContext(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManagement requires the manager or admin role
func RequireManagement(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || (role != user.RoleManager && role != user.RoleAdmin) {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
