package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a new expense without splits.
func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO expenses (id, settlement_id, payer_id, amount, category, description,
			expense_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.SettlementID, e.PayerID, e.Amount, e.Category, e.Description,
		e.ExpenseDate, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID retrieves an expense with its splits.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	var e domain.Expense
	err := r.pool.QueryRow(ctx, `
		SELECT id, settlement_id, payer_id, amount, category, description,
			expense_date, created_at, updated_at
		FROM expenses WHERE id = $1`, id).
		Scan(&e.ID, &e.SettlementID, &e.PayerID, &e.Amount, &e.Category, &e.Description,
			&e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}

	splits, err := r.loadSplits(ctx, []string{e.ID})
	if err != nil {
		return nil, err
	}
	e.Splits = splits[e.ID]
	return &e, nil
}

// ListBySettlement lists a settlement's expenses with splits, oldest first.
func (r *ExpenseRepository) ListBySettlement(ctx context.Context, settlementID string) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, settlement_id, payer_id, amount, category, description,
			expense_date, created_at, updated_at
		FROM expenses
		WHERE settlement_id = $1
		ORDER BY expense_date, id`, settlementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var e domain.Expense
		err := rows.Scan(&e.ID, &e.SettlementID, &e.PayerID, &e.Amount, &e.Category, &e.Description,
			&e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return expenses, nil
	}

	splits, err := r.loadSplits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Splits = splits[e.ID]
	}
	return expenses, nil
}

// Update writes the mutable expense fields. The amount is immutable.
func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE expenses
		SET category = $2, description = $3, expense_date = $4, updated_at = $5
		WHERE id = $1`,
		e.ID, e.Category, e.Description, e.ExpenseDate, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense. Splits cascade.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// ReplaceSplits swaps the full split set of an expense inside a transaction.
func (r *ExpenseRepository) ReplaceSplits(ctx context.Context, tx usecase.Transaction, expenseID string, splits []*domain.ExpenseSplit) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, expenseID); err != nil {
		return err
	}

	for _, s := range splits {
		_, err := pgxTx.Exec(ctx, `
			INSERT INTO expense_splits (id, expense_id, participant_id, share)
			VALUES ($1, $2, $3, $4)`,
			s.ID, s.ExpenseID, s.ParticipantID, s.Share,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ExpenseRepository) loadSplits(ctx context.Context, expenseIDs []string) (map[string][]*domain.ExpenseSplit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, expense_id, participant_id, share
		FROM expense_splits
		WHERE expense_id = ANY($1)
		ORDER BY id`, expenseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	splits := make(map[string][]*domain.ExpenseSplit)
	for rows.Next() {
		var s domain.ExpenseSplit
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.Share); err != nil {
			return nil, err
		}
		splits[s.ExpenseID] = append(splits[s.ExpenseID], &s)
	}
	return splits, rows.Err()
}
