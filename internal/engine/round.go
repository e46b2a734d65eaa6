package engine

import (
	"fmt"
	"strings"

	"github.com/kimeasyn/settleup/internal/domain"
)

// ValidateRound reports the status of one game round: Incomplete when
// required participants have no entry, Unbalanced when all entries are
// present but the total is nonzero, valid otherwise. Excluded
// participants are removed from the requirement check, but any entry
// they do have still counts toward the total.
//
// The engine only reports status; rejecting a non-valid round before it
// is accepted into the ledger is the calling workflow's job.
func ValidateRound(entries []*domain.GameRoundEntry, participants []*domain.Participant, excludedParticipantIDs []string) domain.RoundValidation {
	var totalAmount int64
	for _, entry := range entries {
		totalAmount += entry.Amount
	}

	excluded := make(map[string]bool, len(excludedParticipantIDs))
	for _, id := range excludedParticipantIDs {
		excluded[id] = true
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		present[entry.ParticipantID] = true
	}

	var missing []string
	for _, p := range participants {
		if p.IsActive && !excluded[p.ID] && !present[p.ID] {
			missing = append(missing, p.Name)
		}
	}

	result := domain.RoundValidation{
		IsValid:             totalAmount == 0 && len(missing) == 0,
		TotalAmount:         totalAmount,
		MissingParticipants: missing,
	}

	if totalAmount != 0 {
		result.ErrorMessage = fmt.Sprintf("round total is %d, must be 0", totalAmount)
	} else if len(missing) > 0 {
		result.ErrorMessage = fmt.Sprintf("missing amounts for: %s", strings.Join(missing, ", "))
	}

	return result
}
