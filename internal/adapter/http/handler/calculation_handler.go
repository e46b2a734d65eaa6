package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimeasyn/settleup/internal/adapter/http/dto"
	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// CalculationService defines the calculation operations the handler needs.
type CalculationService interface {
	Calculate(ctx context.Context, settlementID string) (*domain.SettlementResult, error)
	GetLatestResult(ctx context.Context, settlementID string) (*domain.SettlementResult, error)
	ListResults(ctx context.Context, settlementID string, limit, offset int) ([]*domain.SettlementResult, error)
	GetGameOverview(ctx context.Context, settlementID string) (*usecase.GameOverview, error)
	InvalidateResult(ctx context.Context, settlementID string) error
}

// CalculationHandler handles calculation HTTP requests.
type CalculationHandler struct {
	service CalculationService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(service CalculationService) *CalculationHandler {
	return &CalculationHandler{service: service}
}

// Calculate runs a fresh calculation and persists the snapshot.
func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	result, err := h.service.Calculate(r.Context(), settlementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to calculate settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ResultFromDomain(result))
}

// GetLatest returns the most recent snapshot for a settlement.
func (h *CalculationHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	result, err := h.service.GetLatestResult(r.Context(), settlementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get result", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ResultFromDomain(result))
}

// List returns snapshot history for a settlement, newest first.
func (h *CalculationHandler) List(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	results, err := h.service.ListResults(r.Context(), settlementID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list results", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResultsResponse{
		Results: dto.ResultsFromDomain(results),
	})
}

// GameOverview returns the summary and statistics of a game settlement.
func (h *CalculationHandler) GameOverview(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	overview, err := h.service.GetGameOverview(r.Context(), settlementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build game overview", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GameOverviewFromUseCase(overview))
}

// Invalidate drops the cached snapshot for a settlement.
func (h *CalculationHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	if err := h.service.InvalidateResult(r.Context(), settlementID); err != nil {
		writeError(w, mapDomainError(err), "failed to invalidate result", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
