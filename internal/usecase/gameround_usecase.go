package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/engine"
)

// GameRoundUseCase handles game-round business logic.
type GameRoundUseCase struct {
	txManager       TransactionManager
	settlementRepo  SettlementRepository
	participantRepo ParticipantRepository
	roundRepo       GameRoundRepository
	idGen           IDGenerator
}

// NewGameRoundUseCase creates a new GameRoundUseCase.
func NewGameRoundUseCase(
	txManager TransactionManager,
	settlementRepo SettlementRepository,
	participantRepo ParticipantRepository,
	roundRepo GameRoundRepository,
	idGen IDGenerator,
) *GameRoundUseCase {
	return &GameRoundUseCase{
		txManager:       txManager,
		settlementRepo:  settlementRepo,
		participantRepo: participantRepo,
		roundRepo:       roundRepo,
		idGen:           idGen,
	}
}

// CreateRoundInput represents input for creating a game round.
type CreateRoundInput struct {
	SettlementID           string
	Title                  string
	ExcludedParticipantIDs []string
}

// CreateRound opens a new round. The round number is assigned
// sequentially and the title defaults to "Round N".
func (uc *GameRoundUseCase) CreateRound(ctx context.Context, input CreateRoundInput) (*domain.GameRound, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, input.SettlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Type != domain.SettlementTypeGame {
		return nil, ErrTypeMismatch
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	if err := uc.checkMembers(ctx, settlement.ID, input.ExcludedParticipantIDs); err != nil {
		return nil, err
	}

	count, err := uc.roundRepo.CountBySettlement(ctx, settlement.ID)
	if err != nil {
		return nil, err
	}

	number := count + 1
	title := input.Title
	if title == "" {
		title = fmt.Sprintf("Round %d", number)
	}

	now := time.Now().UTC()
	round := &domain.GameRound{
		ID:                     uc.idGen.Generate(),
		SettlementID:           settlement.ID,
		RoundNumber:            number,
		Title:                  title,
		ExcludedParticipantIDs: input.ExcludedParticipantIDs,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := uc.roundRepo.Create(ctx, round); err != nil {
		return nil, err
	}

	return round, nil
}

// GetRound retrieves a round with its entries.
func (uc *GameRoundUseCase) GetRound(ctx context.Context, id string) (*domain.GameRound, error) {
	return uc.roundRepo.GetByID(ctx, id)
}

// ListRounds lists all rounds of a settlement in round order.
func (uc *GameRoundUseCase) ListRounds(ctx context.Context, settlementID string) ([]*domain.GameRound, error) {
	if _, err := uc.settlementRepo.GetByID(ctx, settlementID); err != nil {
		return nil, err
	}
	return uc.roundRepo.ListBySettlement(ctx, settlementID)
}

// UpdateRoundInput represents the mutable round fields.
type UpdateRoundInput struct {
	Title                  *string
	ExcludedParticipantIDs []string
}

// UpdateRound updates title or exclusions of an open round.
func (uc *GameRoundUseCase) UpdateRound(ctx context.Context, id string, input UpdateRoundInput) (*domain.GameRound, error) {
	round, err := uc.openRound(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		round.Title = *input.Title
	}
	if input.ExcludedParticipantIDs != nil {
		if err := uc.checkMembers(ctx, round.SettlementID, input.ExcludedParticipantIDs); err != nil {
			return nil, err
		}
		round.ExcludedParticipantIDs = input.ExcludedParticipantIDs
	}
	round.UpdatedAt = time.Now().UTC()

	if err := uc.roundRepo.Update(ctx, round); err != nil {
		return nil, err
	}

	return round, nil
}

// EntryInput is one participant's amount for a round.
type EntryInput struct {
	ParticipantID string
	Amount        int64
	Memo          string
}

// SaveEntries replaces the full entry set of an open round and reports
// the round's resulting validation status. Incomplete or unbalanced
// entries are stored anyway; only completing the round demands
// validity.
func (uc *GameRoundUseCase) SaveEntries(ctx context.Context, roundID string, inputs []EntryInput) (*domain.GameRound, domain.RoundValidation, error) {
	round, err := uc.openRound(ctx, roundID)
	if err != nil {
		return nil, domain.RoundValidation{}, err
	}

	participants, err := uc.participantRepo.ListBySettlement(ctx, round.SettlementID)
	if err != nil {
		return nil, domain.RoundValidation{}, err
	}
	members := make(map[string]bool, len(participants))
	for _, p := range participants {
		members[p.ID] = true
	}

	seen := make(map[string]bool, len(inputs))
	now := time.Now().UTC()
	entries := make([]*domain.GameRoundEntry, len(inputs))
	for i, in := range inputs {
		if !members[in.ParticipantID] {
			return nil, domain.RoundValidation{}, domain.ErrWrongSettlement
		}
		if round.Excludes(in.ParticipantID) {
			return nil, domain.RoundValidation{}, fmt.Errorf("%w: %s", domain.ErrEntryForExcluded, in.ParticipantID)
		}
		if seen[in.ParticipantID] {
			return nil, domain.RoundValidation{}, fmt.Errorf("%w: %s", domain.ErrDuplicateEntry, in.ParticipantID)
		}
		seen[in.ParticipantID] = true

		entries[i] = &domain.GameRoundEntry{
			ID:            uc.idGen.Generate(),
			RoundID:       round.ID,
			ParticipantID: in.ParticipantID,
			Amount:        in.Amount,
			Memo:          in.Memo,
			CreatedAt:     now,
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, domain.RoundValidation{}, err
	}
	defer tx.Rollback(ctx)

	if err := uc.roundRepo.ReplaceEntries(ctx, tx, round.ID, entries); err != nil {
		return nil, domain.RoundValidation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.RoundValidation{}, err
	}

	round.Entries = entries
	round.UpdatedAt = now

	validation := engine.ValidateRound(entries, participants, round.ExcludedParticipantIDs)
	return round, validation, nil
}

// CompleteRound accepts a round into the game ledger. The round must
// validate clean: every required participant entered and the entries
// summing to zero.
func (uc *GameRoundUseCase) CompleteRound(ctx context.Context, id string) (*domain.GameRound, error) {
	round, err := uc.openRound(ctx, id)
	if err != nil {
		return nil, err
	}

	participants, err := uc.participantRepo.ListBySettlement(ctx, round.SettlementID)
	if err != nil {
		return nil, err
	}

	validation := engine.ValidateRound(round.Entries, participants, round.ExcludedParticipantIDs)
	if !validation.IsValid {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoundNotValid, validation.ErrorMessage)
	}

	now := time.Now().UTC()
	if err := uc.roundRepo.MarkCompleted(ctx, round.ID, now); err != nil {
		return nil, err
	}

	round.IsCompleted = true
	round.UpdatedAt = now
	return round, nil
}

// DeleteRound removes an open round and its entries.
func (uc *GameRoundUseCase) DeleteRound(ctx context.Context, id string) error {
	round, err := uc.openRound(ctx, id)
	if err != nil {
		return err
	}
	return uc.roundRepo.Delete(ctx, round.ID)
}

func (uc *GameRoundUseCase) openRound(ctx context.Context, id string) (*domain.GameRound, error) {
	round, err := uc.roundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if round.IsCompleted {
		return nil, domain.ErrRoundCompleted
	}

	settlement, err := uc.settlementRepo.GetByID(ctx, round.SettlementID)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	return round, nil
}

func (uc *GameRoundUseCase) checkMembers(ctx context.Context, settlementID string, participantIDs []string) error {
	if len(participantIDs) == 0 {
		return nil
	}

	participants, err := uc.participantRepo.ListBySettlement(ctx, settlementID)
	if err != nil {
		return err
	}
	members := make(map[string]bool, len(participants))
	for _, p := range participants {
		members[p.ID] = true
	}
	for _, id := range participantIDs {
		if !members[id] {
			return domain.ErrWrongSettlement
		}
	}
	return nil
}
