package recordhandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yukyu/internal/domain/leave"
	"yukyu/internal/platform/metrics"
	"yukyu/internal/transport/http/api"
	"yukyu/internal/transport/http/middleware"
	"yukyu/internal/transport/http/shared"
)

type Handler struct {
	Store   leave.StoreAPI
	Metrics *metrics.Collector
}

func NewHandler(store leave.StoreAPI, collector *metrics.Collector) *Handler {
	return &Handler{Store: store, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/records", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSave)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListRecords(r.Context())
	if err != nil {
		slog.Error("list records failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "records_list_failed", "failed to list records", middleware.GetRequestID(r.Context()))
		return
	}
	api.JSON(w, records)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload recordPayload
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	validator := shared.NewValidator()
	validator.Struct("", payload)
	if validator.Reject(w, requestID) {
		return
	}

	if err := h.Store.SaveRecord(r.Context(), payload.toRecord()); err != nil {
		shared.FailStore(w, err, "record_save_failed", requestID)
		return
	}
	h.Metrics.RecordSave()
	api.OK(w)
}
