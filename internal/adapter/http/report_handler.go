package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/app/reporting"
	"github.com/pandawok/pos/internal/interfaces"
)

type ReportHandler struct {
	service interfaces.ReportingService
	logger  logger.Logger
}

func NewReportHandler(service interfaces.ReportingService, logger logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// Interim is the non-destructive mid-period report. Calling it any number
// of times leaves the open period untouched.
func (h *ReportHandler) Interim(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetInterimReport(r.Context())
	if err != nil {
		h.logger.Error("interim_report_failed", "Failed to build interim report", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Close aggregates the open period and advances the watermark.
func (h *ReportHandler) Close(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.CloseReport(r.Context())
	if err != nil {
		h.logger.Error("close_report_failed", "Failed to close sales period", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) SalesByRecipe(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseWindow(w, r)
	if !ok {
		return
	}

	lines, err := h.service.SalesByRecipe(r.Context(), from, to)
	if err != nil {
		h.respondWindowError(w, "sales_report_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

func (h *ReportHandler) InventoryUsage(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseWindow(w, r)
	if !ok {
		return
	}

	lines, err := h.service.InventoryUsage(r.Context(), from, to)
	if err != nil {
		h.respondWindowError(w, "usage_report_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

func (h *ReportHandler) Restock(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.RestockReport(r.Context())
	if err != nil {
		h.logger.Error("restock_report_failed", "Failed to build restock report", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

// parseWindow reads the from/to query parameters as RFC 3339 timestamps.
// Missing bounds default to the last 24 hours.
func parseWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from, to := now.Add(-24*time.Hour), now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, "from must be an RFC 3339 timestamp", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, "to must be an RFC 3339 timestamp", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	return from, to, true
}

func (h *ReportHandler) respondWindowError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, reporting.ErrInvalidWindow) {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Error(action, "Failed to build report", "", nil, err)
	respondError(w, "Internal server error", http.StatusInternalServerError)
}
