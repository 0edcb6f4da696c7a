package middleware

import (
	"net/http"
	"strings"

	"github.com/rossellmestanza/menudigital/api/responses"
	pkgAuth "github.com/rossellmestanza/menudigital/pkg/auth"
	"github.com/rossellmestanza/menudigital/pkg/auth/session"
	"github.com/rossellmestanza/menudigital/pkg/config"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

// SessionCookieName carries the admin JWT on browser clients.
const SessionCookieName = "md_session"

// AdminAuth validates the admin JWT and seeds the request context with the
// claims. The token is read from the session cookie first, then from the
// Authorization header.
func AdminAuth(cfg config.JWTConfig, verifier session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAdminToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := WithIdentity(r.Context(), claims.AdminID, claims.Username, claims.ID)

			if logg != nil {
				ctx = logg.WithAdminID(ctx, claims.AdminID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
