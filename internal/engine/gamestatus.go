package engine

import "github.com/kimeasyn/settleup/internal/domain"

// AggregateGameStatus folds all accepted rounds into per-participant
// cumulative totals, win/loss counts and extremes. Output follows the
// input participant order and covers active participants only.
//
// Callers are expected to pass only rounds that validated clean; a
// round that excludes a participant contributes nothing to that
// participant, not even to their round count. With zero rounds every
// numeric field is zero.
func AggregateGameStatus(participants []*domain.Participant, rounds []*domain.GameRound) []*domain.ParticipantGameStatus {
	active := domain.ActiveParticipants(participants)

	statuses := make([]*domain.ParticipantGameStatus, 0, len(active))
	for _, p := range active {
		status := &domain.ParticipantGameStatus{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
		}

		for _, round := range rounds {
			if round.Excludes(p.ID) {
				continue
			}

			entry := round.EntryFor(p.ID)
			if entry == nil {
				continue
			}

			status.RoundCount++
			status.TotalAmount += entry.Amount

			switch {
			case entry.Amount > 0:
				status.WinCount++
				if entry.Amount > status.MaxWin {
					status.MaxWin = entry.Amount
				}
			case entry.Amount < 0:
				status.LoseCount++
				if -entry.Amount > status.MaxLoss {
					status.MaxLoss = -entry.Amount
				}
			}
		}

		statuses = append(statuses, status)
	}

	return statuses
}
