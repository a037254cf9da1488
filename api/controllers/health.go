package controllers

import (
	"context"
	"net/http"

	"github.com/zestraw/storefront-backend/api/responses"
	"github.com/zestraw/storefront-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Zestraw-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// Pinger reports whether a dependency answers within the request deadline.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthReady(cfg *config.Config, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Zestraw-Env", cfg.App.Env)

		status := map[string]string{"status": "ready"}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				status["status"] = "degraded"
				status[name] = err.Error()
			} else {
				status[name] = "ok"
			}
		}

		if status["status"] != "ready" {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
