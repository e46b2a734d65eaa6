package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
)

// inviteAlphabet omits characters that read ambiguously on a phone
// screen (0/O, 1/I/L).
const inviteAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// SettlementUseCase handles settlement lifecycle business logic.
type SettlementUseCase struct {
	settlementRepo  SettlementRepository
	participantRepo ParticipantRepository
	inviteRepo      InviteRepository
	idGen           IDGenerator
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	settlementRepo SettlementRepository,
	participantRepo ParticipantRepository,
	inviteRepo InviteRepository,
	idGen IDGenerator,
) *SettlementUseCase {
	return &SettlementUseCase{
		settlementRepo:  settlementRepo,
		participantRepo: participantRepo,
		inviteRepo:      inviteRepo,
		idGen:           idGen,
	}
}

// CreateSettlementInput represents input for creating a settlement.
type CreateSettlementInput struct {
	Title            string
	Type             domain.SettlementType
	CreatorID        string
	Description      string
	Currency         string
	StartDate        *time.Time
	EndDate          *time.Time
	ParticipantNames []string
}

// CreateSettlement creates a settlement together with its initial
// participants, if any names are supplied.
func (uc *SettlementUseCase) CreateSettlement(ctx context.Context, input CreateSettlementInput) (*domain.Settlement, error) {
	if input.Currency == "" {
		input.Currency = "KRW"
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	settlement := &domain.Settlement{
		ID:          uc.idGen.Generate(),
		Title:       strings.TrimSpace(input.Title),
		Type:        input.Type,
		Status:      domain.SettlementStatusActive,
		CreatorID:   input.CreatorID,
		Description: input.Description,
		Currency:    strings.ToUpper(strings.TrimSpace(input.Currency)),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	if err := uc.settlementRepo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	for _, name := range input.ParticipantNames {
		participant := &domain.Participant{
			ID:           uc.idGen.Generate(),
			SettlementID: settlement.ID,
			Name:         strings.TrimSpace(name),
			IsActive:     true,
			JoinedAt:     now,
		}
		if err := participant.Validate(); err != nil {
			return nil, err
		}
		if err := uc.participantRepo.Create(ctx, participant); err != nil {
			return nil, err
		}
	}

	return settlement, nil
}

// GetSettlement retrieves a settlement by ID.
func (uc *SettlementUseCase) GetSettlement(ctx context.Context, id string) (*domain.Settlement, error) {
	return uc.settlementRepo.GetByID(ctx, id)
}

// ListSettlementsInput represents input for listing settlements.
type ListSettlementsInput struct {
	CreatorID string
	Limit     int
	Offset    int
}

// ListSettlements lists settlements with pagination, optionally
// filtered by creator.
func (uc *SettlementUseCase) ListSettlements(ctx context.Context, input ListSettlementsInput) ([]*domain.Settlement, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	if input.CreatorID != "" {
		return uc.settlementRepo.ListByCreator(ctx, input.CreatorID, limit, offset)
	}
	return uc.settlementRepo.List(ctx, limit, offset)
}

// UpdateSettlementInput represents the mutable settlement fields. Nil
// pointers leave the current value untouched.
type UpdateSettlementInput struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateSettlement updates mutable fields of an active settlement.
func (uc *SettlementUseCase) UpdateSettlement(ctx context.Context, id string, input UpdateSettlementInput) (*domain.Settlement, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	if input.Title != nil {
		settlement.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		settlement.Description = *input.Description
	}
	if input.StartDate != nil {
		settlement.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		settlement.EndDate = input.EndDate
	}
	settlement.UpdatedAt = time.Now().UTC()

	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	if err := uc.settlementRepo.Update(ctx, settlement); err != nil {
		return nil, err
	}

	return settlement, nil
}

// CompleteSettlement closes a settlement for further edits.
func (uc *SettlementUseCase) CompleteSettlement(ctx context.Context, id string) (*domain.Settlement, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	now := time.Now().UTC()
	if err := uc.settlementRepo.UpdateStatus(ctx, id, domain.SettlementStatusCompleted, now); err != nil {
		return nil, err
	}

	settlement.Status = domain.SettlementStatusCompleted
	settlement.UpdatedAt = now
	return settlement, nil
}

// ReopenSettlement returns a completed settlement to the active state.
func (uc *SettlementUseCase) ReopenSettlement(ctx context.Context, id string) (*domain.Settlement, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.settlementRepo.UpdateStatus(ctx, id, domain.SettlementStatusActive, now); err != nil {
		return nil, err
	}

	settlement.Status = domain.SettlementStatusActive
	settlement.UpdatedAt = now
	return settlement, nil
}

// DeleteSettlement removes a settlement and everything under it.
func (uc *SettlementUseCase) DeleteSettlement(ctx context.Context, id string) error {
	if _, err := uc.settlementRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.settlementRepo.Delete(ctx, id)
}

// CreateInviteCode issues a short-lived code that lets anyone join the
// settlement as a named participant.
func (uc *SettlementUseCase) CreateInviteCode(ctx context.Context, settlementID string, ttl time.Duration) (*domain.InviteCode, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	if ttl <= 0 {
		ttl = DefaultInviteCodeTTL
	}

	code, err := generateInviteCode(InviteCodeLength)
	if err != nil {
		return nil, fmt.Errorf("generating invite code: %w", err)
	}

	now := time.Now().UTC()
	invite := &domain.InviteCode{
		Code:         code,
		SettlementID: settlement.ID,
		ExpiresAt:    now.Add(ttl),
		CreatedAt:    now,
	}

	if err := uc.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	return invite, nil
}

// JoinByInviteCode redeems an invite code and adds the caller as an
// active participant of the settlement it points at.
func (uc *SettlementUseCase) JoinByInviteCode(ctx context.Context, code, name string, userID *string) (*domain.Participant, error) {
	invite, err := uc.inviteRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if invite.Expired(now) {
		return nil, domain.ErrInviteCodeExpired
	}

	settlement, err := uc.settlementRepo.GetByID(ctx, invite.SettlementID)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	participant := &domain.Participant{
		ID:           uc.idGen.Generate(),
		SettlementID: settlement.ID,
		UserID:       userID,
		Name:         strings.TrimSpace(name),
		IsActive:     true,
		JoinedAt:     now,
	}
	if err := participant.Validate(); err != nil {
		return nil, err
	}

	if err := uc.participantRepo.Create(ctx, participant); err != nil {
		return nil, err
	}

	return participant, nil
}

// PurgeExpiredInvites deletes invite codes that can no longer be redeemed.
func (uc *SettlementUseCase) PurgeExpiredInvites(ctx context.Context) error {
	return uc.inviteRepo.DeleteExpired(ctx, time.Now().UTC())
}

func generateInviteCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
