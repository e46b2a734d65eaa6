package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimeasyn/settleup/internal/domain"
)

// ResultRepository implements usecase.ResultRepository. The derived
// slices of a snapshot are stored as JSONB: they are read back whole,
// never queried by field.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Create inserts a calculation snapshot.
func (r *ResultRepository) Create(ctx context.Context, result *domain.SettlementResult) error {
	balances, err := json.Marshal(result.Balances)
	if err != nil {
		return err
	}
	statuses, err := json.Marshal(result.GameStatuses)
	if err != nil {
		return err
	}
	transfers, err := json.Marshal(result.Transfers)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO settlement_results (id, settlement_id, total_amount, balances,
			game_statuses, transfers, calculated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		result.ID, result.SettlementID, result.TotalAmount, balances,
		statuses, transfers, result.CalculatedAt, result.CreatedAt,
	)
	return err
}

// GetLatestBySettlement retrieves the newest snapshot for a settlement.
func (r *ResultRepository) GetLatestBySettlement(ctx context.Context, settlementID string) (*domain.SettlementResult, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, settlement_id, total_amount, balances, game_statuses, transfers,
			calculated_at, created_at
		FROM settlement_results
		WHERE settlement_id = $1
		ORDER BY calculated_at DESC, id DESC
		LIMIT 1`, settlementID)

	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, err
	}
	return result, nil
}

// ListBySettlement lists snapshots for a settlement, newest first.
func (r *ResultRepository) ListBySettlement(ctx context.Context, settlementID string, limit, offset int) ([]*domain.SettlementResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, settlement_id, total_amount, balances, game_statuses, transfers,
			calculated_at, created_at
		FROM settlement_results
		WHERE settlement_id = $1
		ORDER BY calculated_at DESC, id DESC
		LIMIT $2 OFFSET $3`, settlementID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*domain.SettlementResult, 0)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func scanResult(row pgx.Row) (*domain.SettlementResult, error) {
	var (
		result    domain.SettlementResult
		balances  []byte
		statuses  []byte
		transfers []byte
	)
	err := row.Scan(&result.ID, &result.SettlementID, &result.TotalAmount,
		&balances, &statuses, &transfers, &result.CalculatedAt, &result.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(balances, &result.Balances); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(statuses, &result.GameStatuses); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(transfers, &result.Transfers); err != nil {
		return nil, err
	}
	return &result, nil
}
