package engine

import "github.com/kimeasyn/settleup/internal/domain"

// AggregateBalances folds expenses into one balance per active
// participant. Output follows the input participant order; sorting for
// display is the caller's concern.
//
// An expense with finalized splits charges each participant their
// recorded share. An expense without splits is divided equally among
// the participants active right now, not the set active when the
// expense was created; balances are always evaluated against
// present-day participant state.
func AggregateBalances(participants []*domain.Participant, expenses []*domain.Expense) ([]*domain.ParticipantBalance, error) {
	active := domain.ActiveParticipants(participants)
	if len(active) == 0 {
		return []*domain.ParticipantBalance{}, nil
	}

	activeIDs := make([]string, len(active))
	index := make(map[string]int, len(active))
	for i, p := range active {
		activeIDs[i] = p.ID
		index[p.ID] = i
	}

	totalPaid := make([]int64, len(active))
	shouldPay := make([]int64, len(active))

	for _, expense := range expenses {
		if i, ok := index[expense.PayerID]; ok {
			totalPaid[i] += expense.Amount
		}

		if expense.HasSplits() {
			var sum int64
			for _, split := range expense.Splits {
				sum += split.Share
			}
			if sum != expense.Amount {
				return nil, ErrSplitSumMismatch
			}

			for _, split := range expense.Splits {
				if i, ok := index[split.ParticipantID]; ok {
					shouldPay[i] += split.Share
				}
			}

			continue
		}

		shares, err := AllocateEqual(expense.Amount, activeIDs)
		if err != nil {
			return nil, err
		}
		for _, share := range shares {
			shouldPay[index[share.ParticipantID]] += share.Share
		}
	}

	balances := make([]*domain.ParticipantBalance, len(active))
	for i, p := range active {
		balances[i] = &domain.ParticipantBalance{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			TotalPaid:       totalPaid[i],
			ShouldPay:       shouldPay[i],
			Balance:         totalPaid[i] - shouldPay[i],
		}
	}

	return balances, nil
}
