package controllers

import (
	"net/http"
	"time"

	"github.com/rossellmestanza/menudigital/api/middleware"
	"github.com/rossellmestanza/menudigital/api/responses"
	"github.com/rossellmestanza/menudigital/api/validators"
	"github.com/rossellmestanza/menudigital/internal/auth"
	"github.com/rossellmestanza/menudigital/pkg/config"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin verifies credentials and sets the session cookie.
func AuthLogin(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, result.Token, result.ExpiresAt))
		responses.WriteSuccess(w, map[string]any{
			"admin_id":   result.AdminID,
			"username":   result.Username,
			"expires_at": result.ExpiresAt,
		})
	}
}

// AuthLogout revokes the session and clears the cookie.
func AuthLogout(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		if err := svc.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, "", time.Unix(0, 0)))
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthMe returns the authenticated admin identity.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"admin_id": middleware.AdminIDFromContext(r.Context()),
			"username": middleware.UsernameFromContext(r.Context()),
		})
	}
}

func sessionCookie(cfg *config.Config, token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cfg.App.IsProd(),
		SameSite: http.SameSiteLaxMode,
	}
}
