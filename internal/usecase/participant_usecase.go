package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
)

// ParticipantUseCase handles participant business logic.
type ParticipantUseCase struct {
	settlementRepo  SettlementRepository
	participantRepo ParticipantRepository
	idGen           IDGenerator
}

// NewParticipantUseCase creates a new ParticipantUseCase.
func NewParticipantUseCase(
	settlementRepo SettlementRepository,
	participantRepo ParticipantRepository,
	idGen IDGenerator,
) *ParticipantUseCase {
	return &ParticipantUseCase{
		settlementRepo:  settlementRepo,
		participantRepo: participantRepo,
		idGen:           idGen,
	}
}

// AddParticipantInput represents input for adding a participant.
type AddParticipantInput struct {
	SettlementID string
	Name         string
	UserID       *string
}

// AddParticipant adds an active participant to an active settlement.
func (uc *ParticipantUseCase) AddParticipant(ctx context.Context, input AddParticipantInput) (*domain.Participant, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, input.SettlementID)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	participant := &domain.Participant{
		ID:           uc.idGen.Generate(),
		SettlementID: settlement.ID,
		UserID:       input.UserID,
		Name:         strings.TrimSpace(input.Name),
		IsActive:     true,
		JoinedAt:     time.Now().UTC(),
	}
	if err := participant.Validate(); err != nil {
		return nil, err
	}

	if err := uc.participantRepo.Create(ctx, participant); err != nil {
		return nil, err
	}

	return participant, nil
}

// GetParticipant retrieves a participant by ID.
func (uc *ParticipantUseCase) GetParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	return uc.participantRepo.GetByID(ctx, id)
}

// ListParticipants lists all participants of a settlement, active and
// inactive, in join order.
func (uc *ParticipantUseCase) ListParticipants(ctx context.Context, settlementID string) ([]*domain.Participant, error) {
	if _, err := uc.settlementRepo.GetByID(ctx, settlementID); err != nil {
		return nil, err
	}
	return uc.participantRepo.ListBySettlement(ctx, settlementID)
}

// RenameParticipant changes a participant's display name.
func (uc *ParticipantUseCase) RenameParticipant(ctx context.Context, id, name string) (*domain.Participant, error) {
	participant, err := uc.participantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	participant.Name = strings.TrimSpace(name)
	if err := participant.Validate(); err != nil {
		return nil, err
	}

	if err := uc.participantRepo.Update(ctx, participant); err != nil {
		return nil, err
	}

	return participant, nil
}

// DeactivateParticipant soft-removes a participant. Their historical
// expenses, splits and round entries stay on record; they are simply
// no longer included in new equal allocations.
func (uc *ParticipantUseCase) DeactivateParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	return uc.setActive(ctx, id, false)
}

// ReactivateParticipant brings a deactivated participant back.
func (uc *ParticipantUseCase) ReactivateParticipant(ctx context.Context, id string) (*domain.Participant, error) {
	return uc.setActive(ctx, id, true)
}

func (uc *ParticipantUseCase) setActive(ctx context.Context, id string, active bool) (*domain.Participant, error) {
	participant, err := uc.participantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	settlement, err := uc.settlementRepo.GetByID(ctx, participant.SettlementID)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	participant.IsActive = active
	if err := uc.participantRepo.Update(ctx, participant); err != nil {
		return nil, err
	}

	return participant, nil
}
