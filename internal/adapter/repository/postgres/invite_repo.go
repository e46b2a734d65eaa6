package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimeasyn/settleup/internal/domain"
)

// InviteRepository implements usecase.InviteRepository.
type InviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository creates a new InviteRepository.
func NewInviteRepository(pool *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{pool: pool}
}

// Create inserts an invite code.
func (r *InviteRepository) Create(ctx context.Context, invite *domain.InviteCode) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invite_codes (code, settlement_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)`,
		invite.Code, invite.SettlementID, invite.ExpiresAt, invite.CreatedAt,
	)
	return err
}

// GetByCode retrieves an invite code.
func (r *InviteRepository) GetByCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	var invite domain.InviteCode
	err := r.pool.QueryRow(ctx, `
		SELECT code, settlement_id, expires_at, created_at
		FROM invite_codes WHERE code = $1`, code).
		Scan(&invite.Code, &invite.SettlementID, &invite.ExpiresAt, &invite.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInviteCodeNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// DeleteExpired removes codes that expired before the given time.
func (r *InviteRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM invite_codes WHERE expires_at < $1`, before)
	return err
}
