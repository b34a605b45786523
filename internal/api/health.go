package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is satisfied by the memory store, *pgxpool.Pool, and the redis
// client adapter in main.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks store and cache
// connectivity. cache may be nil when Redis is not configured; it is then
// reported as "off" and does not affect the status.
func HealthHandlerFunc(storePinger, cachePinger Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		storeStatus := "ok"
		cacheStatus := "off"

		if err := storePinger.Ping(ctx); err != nil {
			log.Error("health check: store ping failed", "err", err)
			storeStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if cachePinger != nil {
			cacheStatus = "ok"
			if err := cachePinger.Ping(ctx); err != nil {
				log.Error("health check: cache ping failed", "err", err)
				cacheStatus = "error"
				status = http.StatusServiceUnavailable
			}
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"store":  storeStatus,
			"cache":  cacheStatus,
		})
	}
}
