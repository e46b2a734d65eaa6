package usecase

import (
	"context"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/engine"
)

// ExpenseUseCase handles travel-expense business logic.
type ExpenseUseCase struct {
	txManager       TransactionManager
	settlementRepo  SettlementRepository
	participantRepo ParticipantRepository
	expenseRepo     ExpenseRepository
	idGen           IDGenerator
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	settlementRepo SettlementRepository,
	participantRepo ParticipantRepository,
	expenseRepo ExpenseRepository,
	idGen IDGenerator,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:       txManager,
		settlementRepo:  settlementRepo,
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
		idGen:           idGen,
	}
}

// CreateExpenseInput represents input for creating an expense.
type CreateExpenseInput struct {
	SettlementID string
	PayerID      string
	Amount       int64
	Category     string
	Description  string
	ExpenseDate  time.Time
}

// CreateExpense records a new expense without splits. Until splits are
// finalized the expense is divided equally among the currently active
// participants at calculation time.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, input.SettlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Type != domain.SettlementTypeTravel {
		return nil, ErrTypeMismatch
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	payer, err := uc.participantRepo.GetByID(ctx, input.PayerID)
	if err != nil {
		return nil, err
	}
	if payer.SettlementID != settlement.ID {
		return nil, domain.ErrWrongSettlement
	}
	if !payer.IsActive {
		return nil, domain.ErrParticipantInactive
	}

	now := time.Now().UTC()
	if input.ExpenseDate.IsZero() {
		input.ExpenseDate = now
	}

	expense := &domain.Expense{
		ID:           uc.idGen.Generate(),
		SettlementID: settlement.ID,
		PayerID:      payer.ID,
		Amount:       input.Amount,
		Category:     input.Category,
		Description:  input.Description,
		ExpenseDate:  input.ExpenseDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense with its splits.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id)
}

// ListExpenses lists all expenses of a settlement with their splits.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, settlementID string) ([]*domain.Expense, error) {
	if _, err := uc.settlementRepo.GetByID(ctx, settlementID); err != nil {
		return nil, err
	}
	return uc.expenseRepo.ListBySettlement(ctx, settlementID)
}

// UpdateExpenseInput represents the mutable expense fields. The amount
// is immutable; delete and recreate to change it.
type UpdateExpenseInput struct {
	Category    *string
	Description *string
	ExpenseDate *time.Time
}

// UpdateExpense updates descriptive fields of an expense.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, id string, input UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	settlement, err := uc.settlementRepo.GetByID(ctx, expense.SettlementID)
	if err != nil {
		return nil, err
	}
	if settlement.IsCompleted() {
		return nil, domain.ErrSettlementCompleted
	}

	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.ExpenseDate != nil {
		expense.ExpenseDate = *input.ExpenseDate
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense removes an expense and its splits.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	settlement, err := uc.settlementRepo.GetByID(ctx, expense.SettlementID)
	if err != nil {
		return err
	}
	if settlement.IsCompleted() {
		return domain.ErrSettlementCompleted
	}

	return uc.expenseRepo.Delete(ctx, id)
}

// SetEqualSplits finalizes an expense's splits as an equal division
// among the currently active participants. Any indivisible remainder
// lands on the first participant's share.
func (uc *ExpenseUseCase) SetEqualSplits(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, settlement, err := uc.editableExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	participants, err := uc.participantRepo.ListBySettlement(ctx, settlement.ID)
	if err != nil {
		return nil, err
	}

	active := domain.ActiveParticipants(participants)
	ids := make([]string, len(active))
	for i, p := range active {
		ids[i] = p.ID
	}

	shares, err := engine.AllocateEqual(expense.Amount, ids)
	if err != nil {
		return nil, err
	}

	return uc.storeSplits(ctx, expense, shares)
}

// SetManualSplits finalizes an expense's splits from hand-entered
// shares. Shares that do not sum to the expense amount are reported
// back as an invalid SplitValidation and nothing is stored; a negative
// share is a hard error.
func (uc *ExpenseUseCase) SetManualSplits(ctx context.Context, expenseID string, shares []domain.SplitShare) (*domain.Expense, domain.SplitValidation, error) {
	expense, settlement, err := uc.editableExpense(ctx, expenseID)
	if err != nil {
		return nil, domain.SplitValidation{}, err
	}

	validation, err := engine.ValidateManualSplits(expense.Amount, shares)
	if err != nil {
		return nil, domain.SplitValidation{}, err
	}
	if !validation.Valid {
		return nil, validation, nil
	}

	participants, err := uc.participantRepo.ListBySettlement(ctx, settlement.ID)
	if err != nil {
		return nil, domain.SplitValidation{}, err
	}
	members := make(map[string]bool, len(participants))
	for _, p := range participants {
		members[p.ID] = true
	}
	for _, s := range shares {
		if !members[s.ParticipantID] {
			return nil, domain.SplitValidation{}, domain.ErrWrongSettlement
		}
	}

	updated, err := uc.storeSplits(ctx, expense, shares)
	if err != nil {
		return nil, domain.SplitValidation{}, err
	}
	return updated, validation, nil
}

func (uc *ExpenseUseCase) editableExpense(ctx context.Context, expenseID string) (*domain.Expense, *domain.Settlement, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}

	settlement, err := uc.settlementRepo.GetByID(ctx, expense.SettlementID)
	if err != nil {
		return nil, nil, err
	}
	if settlement.IsCompleted() {
		return nil, nil, domain.ErrSettlementCompleted
	}

	return expense, settlement, nil
}

func (uc *ExpenseUseCase) storeSplits(ctx context.Context, expense *domain.Expense, shares []domain.SplitShare) (*domain.Expense, error) {
	splits := make([]*domain.ExpenseSplit, len(shares))
	for i, s := range shares {
		splits[i] = &domain.ExpenseSplit{
			ID:            uc.idGen.Generate(),
			ExpenseID:     expense.ID,
			ParticipantID: s.ParticipantID,
			Share:         s.Share,
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.expenseRepo.ReplaceSplits(ctx, tx, expense.ID, splits); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	expense.Splits = splits
	expense.UpdatedAt = time.Now().UTC()
	return expense, nil
}
