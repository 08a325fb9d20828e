package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger é satisfeito pela conexão com o Postgres
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]any{
			"status":    "ok",
			"database":  "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		}

		if err := db.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			writeJSON(w, r, http.StatusServiceUnavailable, status)
			return
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
