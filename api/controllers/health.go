package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rossellmestanza/menudigital/api/responses"
	"github.com/rossellmestanza/menudigital/pkg/config"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MenuDigital-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness of the backing stores.
func HealthReady(cfg *config.Config, db pinger, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MenuDigital-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"status": "ready"}
		status := http.StatusOK

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				checks["database"] = "down"
				checks["status"] = "degraded"
				status = http.StatusServiceUnavailable
			} else {
				checks["database"] = "up"
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["redis"] = "down"
				checks["status"] = "degraded"
				status = http.StatusServiceUnavailable
			} else {
				checks["redis"] = "up"
			}
		}

		responses.WriteSuccessStatus(w, status, checks)
	}
}
