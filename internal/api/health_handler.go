package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/akssingh0102/task-management/internal/api/shared"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/redact"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health handles GET /health. With a nil pinger it only reports liveness.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Warn("health check failed", slog.String("error", redact.Error(err)))
				shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
