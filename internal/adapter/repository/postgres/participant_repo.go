package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimeasyn/settleup/internal/domain"
)

// ParticipantRepository implements usecase.ParticipantRepository.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// Create inserts a new participant.
func (r *ParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO participants (id, settlement_id, user_id, name, is_active, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.SettlementID, p.UserID, p.Name, p.IsActive, p.JoinedAt,
	)
	return err
}

// GetByID retrieves a participant by ID.
func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	var p domain.Participant
	err := r.pool.QueryRow(ctx, `
		SELECT id, settlement_id, user_id, name, is_active, joined_at
		FROM participants WHERE id = $1`, id).
		Scan(&p.ID, &p.SettlementID, &p.UserID, &p.Name, &p.IsActive, &p.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListBySettlement lists a settlement's participants in join order.
// Equal-split remainders depend on this ordering being stable.
func (r *ParticipantRepository) ListBySettlement(ctx context.Context, settlementID string) ([]*domain.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, settlement_id, user_id, name, is_active, joined_at
		FROM participants
		WHERE settlement_id = $1
		ORDER BY joined_at, id`, settlementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.SettlementID, &p.UserID, &p.Name, &p.IsActive, &p.JoinedAt); err != nil {
			return nil, err
		}
		participants = append(participants, &p)
	}
	return participants, rows.Err()
}

// Update writes the mutable participant fields.
func (r *ParticipantRepository) Update(ctx context.Context, p *domain.Participant) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE participants
		SET name = $2, is_active = $3
		WHERE id = $1`,
		p.ID, p.Name, p.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}
