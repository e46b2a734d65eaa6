package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kimeasyn/settleup/internal/domain"
)

// BuildGameStatistics aggregates display figures over all rounds. The
// traded total counts each round's positive entries once (every won
// unit was lost by someone, so counting both sides would double it).
// The average is a decimal for presentation; it never flows back into
// balance arithmetic, which stays integer-only.
func BuildGameStatistics(rounds []*domain.GameRound, startTime time.Time, endTime *time.Time) *domain.GameStatistics {
	stats := &domain.GameStatistics{
		TotalRounds: len(rounds),
		StartTime:   startTime,
		EndTime:     endTime,
	}

	for _, round := range rounds {
		for _, entry := range round.Entries {
			if entry.Amount > 0 {
				stats.TotalAmount += entry.Amount
			}
		}
	}

	if stats.TotalRounds > 0 {
		stats.AverageRoundAmount = decimal.NewFromInt(stats.TotalAmount).
			Div(decimal.NewFromInt(int64(stats.TotalRounds))).
			Round(2)
	} else {
		stats.AverageRoundAmount = decimal.Zero
	}

	end := time.Now().UTC()
	if endTime != nil {
		end = *endTime
	}
	if !startTime.IsZero() {
		stats.DurationMinutes = int64(end.Sub(startTime).Round(time.Minute) / time.Minute)
	}

	return stats
}
