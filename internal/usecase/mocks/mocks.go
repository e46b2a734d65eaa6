package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// MockSettlementRepository is a mock implementation of SettlementRepository.
type MockSettlementRepository struct {
	mu          sync.RWMutex
	settlements map[string]*domain.Settlement

	CreateFunc       func(ctx context.Context, settlement *domain.Settlement) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Settlement, error)
	ListFunc         func(ctx context.Context, limit, offset int) ([]*domain.Settlement, error)
	UpdateFunc       func(ctx context.Context, settlement *domain.Settlement) error
	UpdateStatusFunc func(ctx context.Context, id string, status domain.SettlementStatus, updatedAt time.Time) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{
		settlements: make(map[string]*domain.Settlement),
	}
}

func (m *MockSettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, settlement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements[settlement.ID] = settlement
	return nil
}

func (m *MockSettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settlements[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSettlementNotFound
}

func (m *MockSettlementRepository) List(ctx context.Context, limit, offset int) ([]*domain.Settlement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var settlements []*domain.Settlement
	for _, s := range m.settlements {
		settlements = append(settlements, s)
	}
	sort.Slice(settlements, func(i, j int) bool { return settlements[i].ID < settlements[j].ID })
	return settlements, nil
}

func (m *MockSettlementRepository) ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]*domain.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var settlements []*domain.Settlement
	for _, s := range m.settlements {
		if s.CreatorID == creatorID {
			settlements = append(settlements, s)
		}
	}
	sort.Slice(settlements, func(i, j int) bool { return settlements[i].ID < settlements[j].ID })
	return settlements, nil
}

func (m *MockSettlementRepository) Update(ctx context.Context, settlement *domain.Settlement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, settlement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settlements[settlement.ID]; !ok {
		return domain.ErrSettlementNotFound
	}
	m.settlements[settlement.ID] = settlement
	return nil
}

func (m *MockSettlementRepository) UpdateStatus(ctx context.Context, id string, status domain.SettlementStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settlements[id]
	if !ok {
		return domain.ErrSettlementNotFound
	}
	s.Status = status
	s.UpdatedAt = updatedAt
	return nil
}

func (m *MockSettlementRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.settlements, id)
	return nil
}

// MockParticipantRepository is a mock implementation of ParticipantRepository.
type MockParticipantRepository struct {
	mu           sync.RWMutex
	participants map[string]*domain.Participant
	order        []string

	CreateFunc           func(ctx context.Context, participant *domain.Participant) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Participant, error)
	ListBySettlementFunc func(ctx context.Context, settlementID string) ([]*domain.Participant, error)
	UpdateFunc           func(ctx context.Context, participant *domain.Participant) error
}

func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{
		participants: make(map[string]*domain.Participant),
	}
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participants[participant.ID] = participant
	m.order = append(m.order, participant.ID)
	return nil
}

func (m *MockParticipantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.participants[id]; ok {
		return p, nil
	}
	return nil, domain.ErrParticipantNotFound
}

func (m *MockParticipantRepository) ListBySettlement(ctx context.Context, settlementID string) ([]*domain.Participant, error) {
	if m.ListBySettlementFunc != nil {
		return m.ListBySettlementFunc(ctx, settlementID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	participants := make([]*domain.Participant, 0)
	for _, id := range m.order {
		p := m.participants[id]
		if p != nil && p.SettlementID == settlementID {
			participants = append(participants, p)
		}
	}
	return participants, nil
}

func (m *MockParticipantRepository) Update(ctx context.Context, participant *domain.Participant) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, participant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.participants[participant.ID]; !ok {
		return domain.ErrParticipantNotFound
	}
	m.participants[participant.ID] = participant
	return nil
}

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense
	order    []string

	CreateFunc        func(ctx context.Context, expense *domain.Expense) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Expense, error)
	ReplaceSplitsFunc func(ctx context.Context, tx usecase.Transaction, expenseID string, splits []*domain.ExpenseSplit) error
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	m.order = append(m.order, expense.ID)
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenses[id]; ok {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) ListBySettlement(ctx context.Context, settlementID string) ([]*domain.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	expenses := make([]*domain.Expense, 0)
	for _, id := range m.order {
		e := m.expenses[id]
		if e != nil && e.SettlementID == settlementID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[expense.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) ReplaceSplits(ctx context.Context, tx usecase.Transaction, expenseID string, splits []*domain.ExpenseSplit) error {
	if m.ReplaceSplitsFunc != nil {
		return m.ReplaceSplitsFunc(ctx, tx, expenseID, splits)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.expenses[expenseID]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	e.Splits = splits
	return nil
}

// MockGameRoundRepository is a mock implementation of GameRoundRepository.
type MockGameRoundRepository struct {
	mu     sync.RWMutex
	rounds map[string]*domain.GameRound
	order  []string

	CreateFunc         func(ctx context.Context, round *domain.GameRound) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.GameRound, error)
	ReplaceEntriesFunc func(ctx context.Context, tx usecase.Transaction, roundID string, entries []*domain.GameRoundEntry) error
	MarkCompletedFunc  func(ctx context.Context, id string, updatedAt time.Time) error
}

func NewMockGameRoundRepository() *MockGameRoundRepository {
	return &MockGameRoundRepository{
		rounds: make(map[string]*domain.GameRound),
	}
}

func (m *MockGameRoundRepository) Create(ctx context.Context, round *domain.GameRound) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, round)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[round.ID] = round
	m.order = append(m.order, round.ID)
	return nil
}

func (m *MockGameRoundRepository) GetByID(ctx context.Context, id string) (*domain.GameRound, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rounds[id]; ok {
		return r, nil
	}
	return nil, domain.ErrRoundNotFound
}

func (m *MockGameRoundRepository) ListBySettlement(ctx context.Context, settlementID string) ([]*domain.GameRound, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rounds := make([]*domain.GameRound, 0)
	for _, id := range m.order {
		r := m.rounds[id]
		if r != nil && r.SettlementID == settlementID {
			rounds = append(rounds, r)
		}
	}
	return rounds, nil
}

func (m *MockGameRoundRepository) CountBySettlement(ctx context.Context, settlementID string) (int, error) {
	rounds, _ := m.ListBySettlement(ctx, settlementID)
	return len(rounds), nil
}

func (m *MockGameRoundRepository) Update(ctx context.Context, round *domain.GameRound) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rounds[round.ID]; !ok {
		return domain.ErrRoundNotFound
	}
	m.rounds[round.ID] = round
	return nil
}

func (m *MockGameRoundRepository) MarkCompleted(ctx context.Context, id string, updatedAt time.Time) error {
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, id, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rounds[id]
	if !ok {
		return domain.ErrRoundNotFound
	}
	r.IsCompleted = true
	r.UpdatedAt = updatedAt
	return nil
}

func (m *MockGameRoundRepository) ReplaceEntries(ctx context.Context, tx usecase.Transaction, roundID string, entries []*domain.GameRoundEntry) error {
	if m.ReplaceEntriesFunc != nil {
		return m.ReplaceEntriesFunc(ctx, tx, roundID, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rounds[roundID]
	if !ok {
		return domain.ErrRoundNotFound
	}
	r.Entries = entries
	return nil
}

func (m *MockGameRoundRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rounds, id)
	return nil
}

// MockResultRepository is a mock implementation of ResultRepository.
type MockResultRepository struct {
	mu      sync.RWMutex
	results []*domain.SettlementResult

	CreateFunc func(ctx context.Context, result *domain.SettlementResult) error
}

func NewMockResultRepository() *MockResultRepository {
	return &MockResultRepository{}
}

func (m *MockResultRepository) Create(ctx context.Context, result *domain.SettlementResult) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, result)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
	return nil
}

func (m *MockResultRepository) GetLatestBySettlement(ctx context.Context, settlementID string) (*domain.SettlementResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].SettlementID == settlementID {
			return m.results[i], nil
		}
	}
	return nil, domain.ErrResultNotFound
}

func (m *MockResultRepository) ListBySettlement(ctx context.Context, settlementID string, limit, offset int) ([]*domain.SettlementResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := make([]*domain.SettlementResult, 0)
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].SettlementID == settlementID {
			results = append(results, m.results[i])
		}
	}
	return results, nil
}

// MockInviteRepository is a mock implementation of InviteRepository.
type MockInviteRepository struct {
	mu      sync.RWMutex
	invites map[string]*domain.InviteCode

	CreateFunc    func(ctx context.Context, invite *domain.InviteCode) error
	GetByCodeFunc func(ctx context.Context, code string) (*domain.InviteCode, error)
}

func NewMockInviteRepository() *MockInviteRepository {
	return &MockInviteRepository{
		invites: make(map[string]*domain.InviteCode),
	}
}

func (m *MockInviteRepository) Create(ctx context.Context, invite *domain.InviteCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invite)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invites[invite.Code] = invite
	return nil
}

func (m *MockInviteRepository) GetByCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invites[code]; ok {
		return inv, nil
	}
	return nil, domain.ErrInviteCodeNotFound
}

func (m *MockInviteRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, inv := range m.invites {
		if inv.ExpiresAt.Before(before) {
			delete(m.invites, code)
		}
	}
	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator issuing
// sequential IDs.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the
// operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, op func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, op func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, op)
	}
	return op()
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		values: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	m.values[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}
