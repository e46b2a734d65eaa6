// Package engine implements the settlement calculation engine: expense
// splitting, balance aggregation, game round validation and the debt
// minimization that turns balances into concrete transfers.
//
// Every function is a pure, synchronous computation over the supplied
// snapshot. The engine holds no state between calls, performs no I/O
// and uses integer arithmetic (smallest currency unit) throughout.
package engine

import (
	"fmt"

	"github.com/kimeasyn/settleup/internal/domain"
)

// AllocateEqual divides total equally among the given participants,
// in the supplied order. The division floors, and the first participant
// absorbs the whole remainder: whichever participant the caller orders
// first pays base+remainder, everyone else pays base. The asymmetry is
// documented product behavior, not a rounding artifact.
func AllocateEqual(total int64, participantIDs []string) ([]domain.SplitShare, error) {
	if len(participantIDs) == 0 {
		return nil, ErrNoParticipants
	}

	if total < 0 {
		return nil, ErrNegativeAmount
	}

	n := int64(len(participantIDs))
	base := total / n
	remainder := total - base*n

	shares := make([]domain.SplitShare, len(participantIDs))
	for i, id := range participantIDs {
		share := base
		if i == 0 {
			share += remainder
		}
		shares[i] = domain.SplitShare{ParticipantID: id, Share: share}
	}

	return shares, nil
}

// ValidateManualSplits checks manually entered shares against the
// expense total. Shares are valid iff they sum to the total exactly, in
// integer currency units; there is no epsilon tolerance at this layer.
// The difference (sum minus total) is always returned so callers can
// display the mismatch while the user is still editing. A negative
// share is a hard failure reported with the offending participant.
func ValidateManualSplits(total int64, shares []domain.SplitShare) (domain.SplitValidation, error) {
	var sum int64
	for _, s := range shares {
		if s.Share < 0 {
			return domain.SplitValidation{}, fmt.Errorf("%w: participant %s", ErrNegativeShare, s.ParticipantID)
		}
		sum += s.Share
	}

	return domain.SplitValidation{
		Valid:      sum == total,
		Difference: sum - total,
	}, nil
}
