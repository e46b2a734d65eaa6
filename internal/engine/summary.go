package engine

import "github.com/kimeasyn/settleup/internal/domain"

// BuildGameSummary derives the highlight figures from aggregated game
// statuses. Winner/loser counts take strictly positive/negative totals;
// zero counts toward neither. The biggest winner is surfaced only when
// the maximum total is positive, the biggest loser only when the
// minimum is negative. Ties are broken by input order, first occurrence
// wins.
func BuildGameSummary(statuses []*domain.ParticipantGameStatus, totalRounds int) (*domain.GameSummary, error) {
	if len(statuses) == 0 {
		return nil, ErrNoStatuses
	}

	summary := &domain.GameSummary{
		TotalParticipants: len(statuses),
		TotalRounds:       totalRounds,
	}

	maxStatus := statuses[0]
	minStatus := statuses[0]

	for _, s := range statuses {
		switch {
		case s.TotalAmount > 0:
			summary.WinnerCount++
		case s.TotalAmount < 0:
			summary.LoserCount++
		}

		if s.TotalAmount > maxStatus.TotalAmount {
			maxStatus = s
		}
		if s.TotalAmount < minStatus.TotalAmount {
			minStatus = s
		}
	}

	if maxStatus.TotalAmount > 0 {
		summary.BiggestWinner = maxStatus
	}
	if minStatus.TotalAmount < 0 {
		summary.BiggestLoser = minStatus
	}

	return summary, nil
}
