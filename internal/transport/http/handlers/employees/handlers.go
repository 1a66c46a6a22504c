package employeehandler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"yukyu/internal/domain/compliance"
	"yukyu/internal/domain/leave"
	"yukyu/internal/platform/metrics"
	"yukyu/internal/transport/http/api"
	"yukyu/internal/transport/http/middleware"
	"yukyu/internal/transport/http/shared"
)

type Handler struct {
	Store          leave.StoreAPI
	Metrics        *metrics.Collector
	LedgerFontPath string
	Now            func() time.Time
}

func NewHandler(store leave.StoreAPI, collector *metrics.Collector, ledgerFontPath string) *Handler {
	return &Handler{Store: store, Metrics: collector, LedgerFontPath: ledgerFontPath, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSync)
		r.Get("/ledger.csv", h.handleLedgerCSV)
		r.Get("/ledger.pdf", h.handleLedgerPDF)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		slog.Error("list employees failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.JSON(w, employees)
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload []employeePayload
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}

	validator := shared.NewValidator()
	for i, p := range payload {
		validator.Struct(fmt.Sprintf("[%d]", i), p)
		if validator.HasIssues() {
			break
		}
	}
	if validator.Reject(w, requestID) {
		return
	}

	employees := make([]leave.Employee, 0, len(payload))
	for _, p := range payload {
		employees = append(employees, p.toEmployee())
	}

	count, err := h.Store.SyncEmployees(r.Context(), employees)
	if err != nil {
		shared.FailStore(w, err, "sync_failed", requestID)
		return
	}
	h.Metrics.RecordSync(count)
	api.OKCount(w, count)
}

func (h *Handler) handleLedgerCSV(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.ledgerRows(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := compliance.WriteLedgerCSV(&buf, rows); err != nil {
		api.Fail(w, http.StatusInternalServerError, "ledger_export_failed", "failed to build ledger", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=yukyu-ledger.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleLedgerPDF(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.ledgerRows(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := compliance.WriteLedgerPDF(&buf, rows, h.LedgerFontPath, h.now()); err != nil {
		slog.Error("ledger pdf failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "ledger_export_failed", "failed to build ledger", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=yukyu-ledger.pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) ledgerRows(w http.ResponseWriter, r *http.Request) ([]compliance.LedgerRow, bool) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		slog.Error("list employees failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return compliance.BuildLedger(employees), true
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
