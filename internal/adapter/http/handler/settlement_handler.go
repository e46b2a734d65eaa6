package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kimeasyn/settleup/internal/adapter/http/dto"
	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// SettlementService defines the settlement operations the handler needs.
type SettlementService interface {
	CreateSettlement(ctx context.Context, input usecase.CreateSettlementInput) (*domain.Settlement, error)
	GetSettlement(ctx context.Context, id string) (*domain.Settlement, error)
	ListSettlements(ctx context.Context, input usecase.ListSettlementsInput) ([]*domain.Settlement, error)
	UpdateSettlement(ctx context.Context, id string, input usecase.UpdateSettlementInput) (*domain.Settlement, error)
	CompleteSettlement(ctx context.Context, id string) (*domain.Settlement, error)
	ReopenSettlement(ctx context.Context, id string) (*domain.Settlement, error)
	DeleteSettlement(ctx context.Context, id string) error
	CreateInviteCode(ctx context.Context, settlementID string, ttl time.Duration) (*domain.InviteCode, error)
	JoinByInviteCode(ctx context.Context, code, name string, userID *string) (*domain.Participant, error)
}

// SettlementHandler handles settlement-related HTTP requests.
type SettlementHandler struct {
	service   SettlementService
	inviteTTL time.Duration
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(service SettlementService, inviteTTL time.Duration) *SettlementHandler {
	if inviteTTL <= 0 {
		inviteTTL = usecase.DefaultInviteCodeTTL
	}
	return &SettlementHandler{service: service, inviteTTL: inviteTTL}
}

// Create creates a new settlement.
func (h *SettlementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.service.CreateSettlement(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SettlementFromDomain(settlement))
}

// Get retrieves a settlement by ID.
func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	settlement, err := h.service.GetSettlement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(settlement))
}

// List lists settlements, optionally filtered by creator.
func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.service.ListSettlements(r.Context(), usecase.ListSettlementsInput{
		CreatorID: r.URL.Query().Get("creator_id"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list settlements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSettlementsResponse{
		Settlements: dto.SettlementsFromDomain(settlements),
	})
}

// Update updates mutable settlement fields.
func (h *SettlementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	var req dto.UpdateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.service.UpdateSettlement(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(settlement))
}

// Complete marks a settlement as completed.
func (h *SettlementHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	settlement, err := h.service.CompleteSettlement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to complete settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(settlement))
}

// Reopen reverts a completed settlement to active.
func (h *SettlementHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	settlement, err := h.service.ReopenSettlement(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reopen settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(settlement))
}

// Delete removes a settlement and everything under it.
func (h *SettlementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	if err := h.service.DeleteSettlement(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete settlement", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateInvite issues a new invite code for a settlement.
func (h *SettlementHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	invite, err := h.service.CreateInviteCode(r.Context(), id, h.inviteTTL)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create invite code", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.InviteCodeFromDomain(invite))
}

// Join adds a participant to a settlement via invite code.
func (h *SettlementHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req dto.JoinSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	participant, err := h.service.JoinByInviteCode(r.Context(), req.Code, req.Name, req.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to join settlement", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ParticipantFromDomain(participant))
}
