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

// ParticipantService defines the participant operations the handler needs.
type ParticipantService interface {
	AddParticipant(ctx context.Context, input usecase.AddParticipantInput) (*domain.Participant, error)
	GetParticipant(ctx context.Context, id string) (*domain.Participant, error)
	ListParticipants(ctx context.Context, settlementID string) ([]*domain.Participant, error)
	RenameParticipant(ctx context.Context, id, name string) (*domain.Participant, error)
	DeactivateParticipant(ctx context.Context, id string) (*domain.Participant, error)
	ReactivateParticipant(ctx context.Context, id string) (*domain.Participant, error)
}

// ParticipantHandler handles participant-related HTTP requests.
type ParticipantHandler struct {
	service ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler.
func NewParticipantHandler(service ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{service: service}
}

// Add adds a participant to a settlement.
func (h *ParticipantHandler) Add(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	var req dto.AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	participant, err := h.service.AddParticipant(r.Context(), req.ToUseCaseInput(settlementID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add participant", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ParticipantFromDomain(participant))
}

// Get retrieves a participant by ID.
func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing participant ID", "")
		return
	}

	participant, err := h.service.GetParticipant(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get participant", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParticipantFromDomain(participant))
}

// ListBySettlement lists all participants of a settlement.
func (h *ParticipantHandler) ListBySettlement(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	participants, err := h.service.ListParticipants(r.Context(), settlementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list participants", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListParticipantsResponse{
		Participants: dto.ParticipantsFromDomain(participants),
	})
}

// Rename changes a participant's display name.
func (h *ParticipantHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing participant ID", "")
		return
	}

	var req dto.RenameParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	participant, err := h.service.RenameParticipant(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to rename participant", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParticipantFromDomain(participant))
}

// Deactivate soft-removes a participant from future splits.
func (h *ParticipantHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// Reactivate restores a deactivated participant.
func (h *ParticipantHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *ParticipantHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing participant ID", "")
		return
	}

	var (
		participant *domain.Participant
		err         error
	)
	if active {
		participant, err = h.service.ReactivateParticipant(r.Context(), id)
	} else {
		participant, err = h.service.DeactivateParticipant(r.Context(), id)
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update participant status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParticipantFromDomain(participant))
}
