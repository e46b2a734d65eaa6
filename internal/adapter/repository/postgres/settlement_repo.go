package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimeasyn/settleup/internal/domain"
)

// SettlementRepository implements usecase.SettlementRepository.
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

const settlementColumns = `id, title, type, status, creator_id, description, currency,
	start_date, end_date, version, created_at, updated_at`

// Create inserts a new settlement.
func (r *SettlementRepository) Create(ctx context.Context, s *domain.Settlement) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO settlements (id, title, type, status, creator_id, description, currency,
			start_date, end_date, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.Title, s.Type, s.Status, s.CreatorID, s.Description, s.Currency,
		s.StartDate, s.EndDate, s.Version, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

// GetByID retrieves a settlement by ID.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+settlementColumns+`
		FROM settlements WHERE id = $1`, id)

	return scanSettlement(row)
}

// List lists settlements newest first.
func (r *SettlementRepository) List(ctx context.Context, limit, offset int) ([]*domain.Settlement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+settlementColumns+`
		FROM settlements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSettlements(rows)
}

// ListByCreator lists settlements created by one user, newest first.
func (r *SettlementRepository) ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]*domain.Settlement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+settlementColumns+`
		FROM settlements
		WHERE creator_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, creatorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSettlements(rows)
}

// Update writes the mutable settlement fields, bumping the version.
func (r *SettlementRepository) Update(ctx context.Context, s *domain.Settlement) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE settlements
		SET title = $2, description = $3, start_date = $4, end_date = $5,
			version = version + 1, updated_at = $6
		WHERE id = $1`,
		s.ID, s.Title, s.Description, s.StartDate, s.EndDate, s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementNotFound
	}
	return nil
}

// UpdateStatus flips the lifecycle status.
func (r *SettlementRepository) UpdateStatus(ctx context.Context, id string, status domain.SettlementStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE settlements
		SET status = $2, version = version + 1, updated_at = $3
		WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementNotFound
	}
	return nil
}

// Delete removes a settlement. Child rows cascade.
func (r *SettlementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementNotFound
	}
	return nil
}

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var s domain.Settlement
	err := row.Scan(
		&s.ID, &s.Title, &s.Type, &s.Status, &s.CreatorID, &s.Description, &s.Currency,
		&s.StartDate, &s.EndDate, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettlementNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanSettlements(rows pgx.Rows) ([]*domain.Settlement, error) {
	settlements := make([]*domain.Settlement, 0)
	for rows.Next() {
		var s domain.Settlement
		err := rows.Scan(
			&s.ID, &s.Title, &s.Type, &s.Status, &s.CreatorID, &s.Description, &s.Currency,
			&s.StartDate, &s.EndDate, &s.Version, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, &s)
	}
	return settlements, rows.Err()
}
