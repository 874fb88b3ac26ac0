// internal/handler/health_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// Readiness is flipped exactly once, after the database is connected
// and the schema is synced. API routes stay gated until then.
type Readiness struct {
	ready atomic.Bool
}

func (r *Readiness) Set() {
	r.ready.Store(true)
}

func (r *Readiness) Ready() bool {
	return r.ready.Load()
}

// HealthHandler serves the root status endpoint and the readiness
// gate middleware.
type HealthHandler struct {
	Ready *Readiness
}

// Root reports whether the service has finished starting up.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	status := "starting"
	if h.Ready.Ready() {
		status = "ready"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "customer records API",
		"status":  status,
	})
}

// RequireReady rejects requests with 503 until startup completes.
func (h *HealthHandler) RequireReady(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Ready.Ready() {
			http.Error(w, "service is starting, try again shortly", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
