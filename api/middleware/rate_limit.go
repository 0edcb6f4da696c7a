package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rossellmestanza/menudigital/api/responses"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// LoginRateLimit throttles credential attempts per client IP using a fixed
// window counter in Redis. A zero limit or window disables the middleware.
func LoginRateLimit(store rateLimiter, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || limit <= 0 || window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			scope := "login:" + clientIP(r)
			allowed, count, err := store.FixedWindowAllow(ctx, scope, limit, window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"scope": scope,
						"count": count,
						"limit": limit,
					})
					logg.Warn(ctx, "login.rate_limited")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "demasiados intentos, prueba más tarde"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
