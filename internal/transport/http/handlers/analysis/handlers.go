package analysishandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"yukyu/internal/domain/compliance"
	"yukyu/internal/transport/http/api"
	"yukyu/internal/transport/http/middleware"
	"yukyu/internal/transport/http/shared"
)

type Handler struct {
	Analyzer *compliance.Analyzer
	// Limit wraps the analyze route; nil leaves it unthrottled.
	Limit func(http.Handler) http.Handler
}

type analyzePayload struct {
	Employees []compliance.EmployeeSummary `json:"employees"`
}

func NewHandler(analyzer *compliance.Analyzer, limit func(http.Handler) http.Handler) *Handler {
	return &Handler{Analyzer: analyzer, Limit: limit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	route := r
	if h.Limit != nil {
		route = r.With(h.Limit)
	}
	route.Post("/analyze", h.handleAnalyze)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload analyzePayload
	if !shared.DecodeJSON(w, r, middleware.GetRequestID(r.Context()), &payload) {
		return
	}
	api.JSON(w, h.Analyzer.Analyze(r.Context(), payload.Employees))
}
