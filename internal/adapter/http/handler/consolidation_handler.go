package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/usecase"
)

// ConsolidationHandler handles consolidation query endpoints.
type ConsolidationHandler struct {
	reportUseCase *usecase.ReportUseCase
}

// NewConsolidationHandler creates a new ConsolidationHandler.
func NewConsolidationHandler(reportUseCase *usecase.ReportUseCase) *ConsolidationHandler {
	return &ConsolidationHandler{reportUseCase: reportUseCase}
}

// GetDaily handles GET /api/v1/consolidations/daily/{date}
func (h *ConsolidationHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	date, err := dto.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	consolidation, err := h.reportUseCase.GetByDate(r.Context(), date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get consolidation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsolidationFromDomain(consolidation))
}

// GetRange handles GET /api/v1/consolidations/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ConsolidationHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	series, err := h.reportUseCase.GetByRange(r.Context(), start, end)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get range", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsolidationsFromDomain(series))
}

// GetStatistics handles GET /api/v1/consolidations/range/statistics
func (h *ConsolidationHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	stats, err := h.reportUseCase.GetStatistics(r.Context(), start, end)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute statistics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatisticsFromUseCase(stats))
}

func (h *ConsolidationHandler) parsePeriod(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	start, err := dto.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return time.Time{}, time.Time{}, false
	}

	end, err = dto.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}
