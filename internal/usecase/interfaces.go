package usecase

import (
	"context"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
)

// SettlementRepository defines data access for settlements.
type SettlementRepository interface {
	Create(ctx context.Context, settlement *domain.Settlement) error
	GetByID(ctx context.Context, id string) (*domain.Settlement, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Settlement, error)
	ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]*domain.Settlement, error)
	Update(ctx context.Context, settlement *domain.Settlement) error
	UpdateStatus(ctx context.Context, id string, status domain.SettlementStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// ParticipantRepository defines data access for participants.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *domain.Participant) error
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
	ListBySettlement(ctx context.Context, settlementID string) ([]*domain.Participant, error)
	Update(ctx context.Context, participant *domain.Participant) error
}

// ExpenseRepository defines data access for expenses and their splits.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	ListBySettlement(ctx context.Context, settlementID string) ([]*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
	ReplaceSplits(ctx context.Context, tx Transaction, expenseID string, splits []*domain.ExpenseSplit) error
}

// GameRoundRepository defines data access for game rounds and entries.
type GameRoundRepository interface {
	Create(ctx context.Context, round *domain.GameRound) error
	GetByID(ctx context.Context, id string) (*domain.GameRound, error)
	ListBySettlement(ctx context.Context, settlementID string) ([]*domain.GameRound, error)
	CountBySettlement(ctx context.Context, settlementID string) (int, error)
	Update(ctx context.Context, round *domain.GameRound) error
	MarkCompleted(ctx context.Context, id string, updatedAt time.Time) error
	ReplaceEntries(ctx context.Context, tx Transaction, roundID string, entries []*domain.GameRoundEntry) error
	Delete(ctx context.Context, id string) error
}

// ResultRepository defines data access for calculation snapshots.
type ResultRepository interface {
	Create(ctx context.Context, result *domain.SettlementResult) error
	GetLatestBySettlement(ctx context.Context, settlementID string) (*domain.SettlementResult, error)
	ListBySettlement(ctx context.Context, settlementID string, limit, offset int) ([]*domain.SettlementResult, error)
}

// InviteRepository defines data access for invite codes.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.InviteCode) error
	GetByCode(ctx context.Context, code string) (*domain.InviteCode, error)
	DeleteExpired(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, op func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
