package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// GameRoundRepository implements usecase.GameRoundRepository.
type GameRoundRepository struct {
	pool *pgxpool.Pool
}

// NewGameRoundRepository creates a new GameRoundRepository.
func NewGameRoundRepository(pool *pgxpool.Pool) *GameRoundRepository {
	return &GameRoundRepository{pool: pool}
}

// Create inserts a new round without entries.
func (r *GameRoundRepository) Create(ctx context.Context, round *domain.GameRound) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO game_rounds (id, settlement_id, round_number, title, is_completed,
			excluded_participant_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		round.ID, round.SettlementID, round.RoundNumber, round.Title, round.IsCompleted,
		round.ExcludedParticipantIDs, round.CreatedAt, round.UpdatedAt,
	)
	return err
}

// GetByID retrieves a round with its entries.
func (r *GameRoundRepository) GetByID(ctx context.Context, id string) (*domain.GameRound, error) {
	var round domain.GameRound
	err := r.pool.QueryRow(ctx, `
		SELECT id, settlement_id, round_number, title, is_completed,
			excluded_participant_ids, created_at, updated_at
		FROM game_rounds WHERE id = $1`, id).
		Scan(&round.ID, &round.SettlementID, &round.RoundNumber, &round.Title, &round.IsCompleted,
			&round.ExcludedParticipantIDs, &round.CreatedAt, &round.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoundNotFound
		}
		return nil, err
	}

	entries, err := r.loadEntries(ctx, []string{round.ID})
	if err != nil {
		return nil, err
	}
	round.Entries = entries[round.ID]
	return &round, nil
}

// ListBySettlement lists a settlement's rounds in round order, with entries.
func (r *GameRoundRepository) ListBySettlement(ctx context.Context, settlementID string) ([]*domain.GameRound, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, settlement_id, round_number, title, is_completed,
			excluded_participant_ids, created_at, updated_at
		FROM game_rounds
		WHERE settlement_id = $1
		ORDER BY round_number`, settlementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]*domain.GameRound, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var round domain.GameRound
		err := rows.Scan(&round.ID, &round.SettlementID, &round.RoundNumber, &round.Title, &round.IsCompleted,
			&round.ExcludedParticipantIDs, &round.CreatedAt, &round.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, &round)
		ids = append(ids, round.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return rounds, nil
	}

	entries, err := r.loadEntries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, round := range rounds {
		round.Entries = entries[round.ID]
	}
	return rounds, nil
}

// CountBySettlement counts a settlement's rounds.
func (r *GameRoundRepository) CountBySettlement(ctx context.Context, settlementID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM game_rounds WHERE settlement_id = $1`, settlementID).
		Scan(&count)
	return count, err
}

// Update writes the mutable round fields.
func (r *GameRoundRepository) Update(ctx context.Context, round *domain.GameRound) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE game_rounds
		SET title = $2, excluded_participant_ids = $3, updated_at = $4
		WHERE id = $1`,
		round.ID, round.Title, round.ExcludedParticipantIDs, round.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoundNotFound
	}
	return nil
}

// MarkCompleted freezes a round.
func (r *GameRoundRepository) MarkCompleted(ctx context.Context, id string, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE game_rounds
		SET is_completed = TRUE, updated_at = $2
		WHERE id = $1`,
		id, updatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoundNotFound
	}
	return nil
}

// ReplaceEntries swaps the full entry set of a round inside a transaction.
func (r *GameRoundRepository) ReplaceEntries(ctx context.Context, tx usecase.Transaction, roundID string, entries []*domain.GameRoundEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `DELETE FROM game_round_entries WHERE round_id = $1`, roundID); err != nil {
		return err
	}

	for _, e := range entries {
		_, err := pgxTx.Exec(ctx, `
			INSERT INTO game_round_entries (id, round_id, participant_id, amount, memo, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, e.RoundID, e.ParticipantID, e.Amount, e.Memo, e.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a round. Entries cascade.
func (r *GameRoundRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM game_rounds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoundNotFound
	}
	return nil
}

func (r *GameRoundRepository) loadEntries(ctx context.Context, roundIDs []string) (map[string][]*domain.GameRoundEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, round_id, participant_id, amount, memo, created_at
		FROM game_round_entries
		WHERE round_id = ANY($1)
		ORDER BY created_at, id`, roundIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string][]*domain.GameRoundEntry)
	for rows.Next() {
		var e domain.GameRoundEntry
		if err := rows.Scan(&e.ID, &e.RoundID, &e.ParticipantID, &e.Amount, &e.Memo, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries[e.RoundID] = append(entries[e.RoundID], &e)
	}
	return entries, rows.Err()
}
