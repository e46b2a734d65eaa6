package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/engine"
)

// CalculationUseCase runs the settlement engine over stored data and
// persists the outcome as an immutable snapshot.
type CalculationUseCase struct {
	settlementRepo  SettlementRepository
	participantRepo ParticipantRepository
	expenseRepo     ExpenseRepository
	roundRepo       GameRoundRepository
	resultRepo      ResultRepository
	idGen           IDGenerator
	retrier         Retrier
	cache           Cache
}

// NewCalculationUseCase creates a new CalculationUseCase.
func NewCalculationUseCase(
	settlementRepo SettlementRepository,
	participantRepo ParticipantRepository,
	expenseRepo ExpenseRepository,
	roundRepo GameRoundRepository,
	resultRepo ResultRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *CalculationUseCase {
	return &CalculationUseCase{
		settlementRepo:  settlementRepo,
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
		roundRepo:       roundRepo,
		resultRepo:      resultRepo,
		idGen:           idGen,
		retrier:         retrier,
		cache:           cache,
	}
}

// Calculate runs the calculation that matches the settlement's type.
func (uc *CalculationUseCase) Calculate(ctx context.Context, settlementID string) (*domain.SettlementResult, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	switch settlement.Type {
	case domain.SettlementTypeTravel:
		return uc.calculateTravel(ctx, settlement)
	case domain.SettlementTypeGame:
		return uc.calculateGame(ctx, settlement)
	default:
		return nil, domain.ErrInvalidSettlementType
	}
}

func (uc *CalculationUseCase) calculateTravel(ctx context.Context, settlement *domain.Settlement) (*domain.SettlementResult, error) {
	participants, err := uc.participantRepo.ListBySettlement(ctx, settlement.ID)
	if err != nil {
		return nil, err
	}
	if len(domain.ActiveParticipants(participants)) == 0 {
		return nil, ErrNoActiveParticipants
	}

	expenses, err := uc.expenseRepo.ListBySettlement(ctx, settlement.ID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, ErrNoExpenses
	}

	balances, err := engine.AggregateBalances(participants, expenses)
	if err != nil {
		return nil, err
	}

	transfers, err := engine.MinimizeTransfers(engine.BalancesFromTravel(balances))
	if err != nil {
		return nil, err
	}

	var total int64
	for _, e := range expenses {
		total += e.Amount
	}

	result := &domain.SettlementResult{
		ID:           uc.idGen.Generate(),
		SettlementID: settlement.ID,
		TotalAmount:  total,
		Balances:     balances,
		Transfers:    transfers,
		CalculatedAt: time.Now().UTC(),
		CreatedAt:    time.Now().UTC(),
	}

	return uc.store(ctx, result)
}

func (uc *CalculationUseCase) calculateGame(ctx context.Context, settlement *domain.Settlement) (*domain.SettlementResult, error) {
	participants, err := uc.participantRepo.ListBySettlement(ctx, settlement.ID)
	if err != nil {
		return nil, err
	}
	if len(domain.ActiveParticipants(participants)) == 0 {
		return nil, ErrNoActiveParticipants
	}

	rounds, err := uc.roundRepo.ListBySettlement(ctx, settlement.ID)
	if err != nil {
		return nil, err
	}
	// Autosaved drafts are not accepted yet; only completed rounds count.
	rounds = completedRounds(rounds)
	if len(rounds) == 0 {
		return nil, ErrNoRounds
	}

	statuses := engine.AggregateGameStatus(participants, rounds)

	transfers, err := engine.MinimizeTransfers(engine.BalancesFromGame(statuses))
	if err != nil {
		return nil, err
	}

	// Traded total: the sum everyone won, equal to the sum everyone lost.
	var total int64
	for _, s := range statuses {
		if s.TotalAmount > 0 {
			total += s.TotalAmount
		}
	}

	result := &domain.SettlementResult{
		ID:           uc.idGen.Generate(),
		SettlementID: settlement.ID,
		TotalAmount:  total,
		GameStatuses: statuses,
		Transfers:    transfers,
		CalculatedAt: time.Now().UTC(),
		CreatedAt:    time.Now().UTC(),
	}

	return uc.store(ctx, result)
}

// GameOverview bundles the human-facing highlights of a game
// settlement: the summary plus session statistics.
type GameOverview struct {
	Summary    *domain.GameSummary
	Statistics *domain.GameStatistics
}

// GetGameOverview derives the game summary and statistics without
// persisting anything.
func (uc *CalculationUseCase) GetGameOverview(ctx context.Context, settlementID string) (*GameOverview, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Type != domain.SettlementTypeGame {
		return nil, ErrTypeMismatch
	}

	participants, err := uc.participantRepo.ListBySettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	rounds, err := uc.roundRepo.ListBySettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	rounds = completedRounds(rounds)

	statuses := engine.AggregateGameStatus(participants, rounds)

	summary, err := engine.BuildGameSummary(statuses, len(rounds))
	if err != nil {
		return nil, err
	}

	var endTime *time.Time
	if settlement.IsCompleted() {
		t := settlement.UpdatedAt
		endTime = &t
	}
	statistics := engine.BuildGameStatistics(rounds, settlement.CreatedAt, endTime)

	return &GameOverview{Summary: summary, Statistics: statistics}, nil
}

// GetLatestResult returns the most recent snapshot for a settlement,
// served from cache when warm.
func (uc *CalculationUseCase) GetLatestResult(ctx context.Context, settlementID string) (*domain.SettlementResult, error) {
	key := resultCacheKey(settlementID)

	if data, err := uc.cache.Get(ctx, key); err == nil && len(data) > 0 {
		var cached domain.SettlementResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry; drop it instead of re-decoding it until expiry.
		_ = uc.cache.Delete(ctx, key)
	}

	result, err := uc.resultRepo.GetLatestBySettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = uc.cache.Set(ctx, key, data, ResultCacheTTL)
	}

	return result, nil
}

// ListResults lists snapshots for a settlement, newest first.
func (uc *CalculationUseCase) ListResults(ctx context.Context, settlementID string, limit, offset int) ([]*domain.SettlementResult, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.resultRepo.ListBySettlement(ctx, settlementID, limit, offset)
}

// InvalidateResult drops the cached snapshot after any mutation that
// changes the calculation inputs.
func (uc *CalculationUseCase) InvalidateResult(ctx context.Context, settlementID string) error {
	return uc.cache.Delete(ctx, resultCacheKey(settlementID))
}

func (uc *CalculationUseCase) store(ctx context.Context, result *domain.SettlementResult) (*domain.SettlementResult, error) {
	err := uc.retrier.Retry(ctx, func() error {
		return uc.resultRepo.Create(ctx, result)
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = uc.cache.Set(ctx, resultCacheKey(result.SettlementID), data, ResultCacheTTL)
	}

	return result, nil
}

func resultCacheKey(settlementID string) string {
	return "settleup:result:" + settlementID
}

func completedRounds(rounds []*domain.GameRound) []*domain.GameRound {
	completed := make([]*domain.GameRound, 0, len(rounds))
	for _, r := range rounds {
		if r.IsCompleted {
			completed = append(completed, r)
		}
	}
	return completed
}
