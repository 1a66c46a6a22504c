package systemhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"yukyu/internal/platform/metrics"
	"yukyu/internal/transport/http/api"
	"yukyu/internal/transport/http/middleware"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	DB      Pinger
	Metrics *metrics.Collector
}

func NewHandler(db Pinger, collector *metrics.Collector) *Handler {
	return &Handler{DB: db, Metrics: collector}
}

// RegisterRoutes mounts health and readiness probes; /metrics only when a
// collector is set.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)
	if h.Metrics != nil {
		r.Get("/metrics", h.handleMetrics)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, map[string]string{"status": "ok", "backend": "go"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database not ready", middleware.GetRequestID(r.Context()))
		return
	}
	api.JSON(w, map[string]string{"status": "ready"})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, h.Metrics.Snapshot())
}
