package engine

import "github.com/kimeasyn/settleup/internal/domain"

// Balance is one participant's signed net position handed to
// MinimizeTransfers. Positive means owed (creditor), negative means
// owes (debtor).
type Balance struct {
	ParticipantID   string
	ParticipantName string
	Amount          int64
}

// MinimizeTransfers turns a zero-sum set of balances into a transfer
// plan that drives every balance to exactly zero.
//
// Matching is first-available: the first remaining creditor is paired
// with the first remaining debtor, in input encounter order, and each
// pair settles min(remaining, remaining). The result is deterministic
// for a fixed input order and terminates in at most creditors+debtors-1
// transfers. It is intentionally not guaranteed to minimize the
// absolute transfer count (that matching problem is NP-hard); the
// first-available rule is preserved as observed product behavior, and
// switching to largest-first would change transfer counts.
func MinimizeTransfers(balances []Balance) ([]*domain.Transfer, error) {
	var sum int64
	for _, b := range balances {
		sum += b.Amount
	}
	if sum != 0 {
		return nil, ErrUnbalancedInput
	}

	var creditors, debtors []Balance
	for _, b := range balances {
		switch {
		case b.Amount > 0:
			creditors = append(creditors, b)
		case b.Amount < 0:
			debtors = append(debtors, Balance{
				ParticipantID:   b.ParticipantID,
				ParticipantName: b.ParticipantName,
				Amount:          -b.Amount,
			})
		}
	}

	transfers := []*domain.Transfer{}
	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := &creditors[0]
		debtor := &debtors[0]

		amount := creditor.Amount
		if debtor.Amount < amount {
			amount = debtor.Amount
		}

		if amount > 0 {
			transfers = append(transfers, &domain.Transfer{
				FromParticipantID:   debtor.ParticipantID,
				FromParticipantName: debtor.ParticipantName,
				ToParticipantID:     creditor.ParticipantID,
				ToParticipantName:   creditor.ParticipantName,
				Amount:              amount,
			})

			creditor.Amount -= amount
			debtor.Amount -= amount
		}

		if creditor.Amount == 0 {
			creditors = creditors[1:]
		}
		if debtor.Amount == 0 {
			debtors = debtors[1:]
		}
	}

	return transfers, nil
}

// BalancesFromTravel adapts travel balances for MinimizeTransfers.
func BalancesFromTravel(balances []*domain.ParticipantBalance) []Balance {
	result := make([]Balance, len(balances))
	for i, b := range balances {
		result[i] = Balance{
			ParticipantID:   b.ParticipantID,
			ParticipantName: b.ParticipantName,
			Amount:          b.Balance,
		}
	}
	return result
}

// BalancesFromGame adapts game statuses for MinimizeTransfers.
func BalancesFromGame(statuses []*domain.ParticipantGameStatus) []Balance {
	result := make([]Balance, len(statuses))
	for i, s := range statuses {
		result[i] = Balance{
			ParticipantID:   s.ParticipantID,
			ParticipantName: s.ParticipantName,
			Amount:          s.TotalAmount,
		}
	}
	return result
}
