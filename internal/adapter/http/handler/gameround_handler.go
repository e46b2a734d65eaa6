package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimeasyn/settleup/internal/adapter/http/dto"
	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// GameRoundService defines the round operations the handler needs.
type GameRoundService interface {
	CreateRound(ctx context.Context, input usecase.CreateRoundInput) (*domain.GameRound, error)
	GetRound(ctx context.Context, id string) (*domain.GameRound, error)
	ListRounds(ctx context.Context, settlementID string) ([]*domain.GameRound, error)
	UpdateRound(ctx context.Context, id string, input usecase.UpdateRoundInput) (*domain.GameRound, error)
	SaveEntries(ctx context.Context, roundID string, inputs []usecase.EntryInput) (*domain.GameRound, domain.RoundValidation, error)
	CompleteRound(ctx context.Context, id string) (*domain.GameRound, error)
	DeleteRound(ctx context.Context, id string) error
}

// GameRoundHandler handles game-round HTTP requests.
type GameRoundHandler struct {
	service GameRoundService
}

// NewGameRoundHandler creates a new GameRoundHandler.
func NewGameRoundHandler(service GameRoundService) *GameRoundHandler {
	return &GameRoundHandler{service: service}
}

// Create opens a new round in a game settlement.
func (h *GameRoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	var req dto.CreateRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	round, err := h.service.CreateRound(r.Context(), req.ToUseCaseInput(settlementID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create round", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GameRoundFromDomain(round))
}

// Get retrieves a round by ID.
func (h *GameRoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing round ID", "")
		return
	}

	round, err := h.service.GetRound(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get round", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GameRoundFromDomain(round))
}

// ListBySettlement lists all rounds of a settlement in play order.
func (h *GameRoundHandler) ListBySettlement(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	rounds, err := h.service.ListRounds(r.Context(), settlementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list rounds", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRoundsResponse{
		Rounds: dto.GameRoundsFromDomain(rounds),
	})
}

// Update edits the title or exclusions of an open round.
func (h *GameRoundHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing round ID", "")
		return
	}

	var req dto.UpdateRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	round, err := h.service.UpdateRound(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update round", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GameRoundFromDomain(round))
}

// SaveEntries replaces the round's entries and reports validation.
func (h *GameRoundHandler) SaveEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing round ID", "")
		return
	}

	var req dto.SaveEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	round, validation, err := h.service.SaveEntries(r.Context(), id, req.ToUseCaseInputs())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to save entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SaveEntriesResponse{
		Round:      dto.GameRoundFromDomain(round),
		Validation: dto.RoundValidationFromDomain(validation),
	})
}

// Complete freezes a valid round.
func (h *GameRoundHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing round ID", "")
		return
	}

	round, err := h.service.CompleteRound(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to complete round", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GameRoundFromDomain(round))
}

// Delete removes an open round and its entries.
func (h *GameRoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing round ID", "")
		return
	}

	if err := h.service.DeleteRound(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete round", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
