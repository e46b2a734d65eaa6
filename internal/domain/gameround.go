package domain

import "time"

// GameRound is one discrete zero-sum exchange event in a game
// settlement. Participants listed in ExcludedParticipantIDs sat the
// round out and are not required to have an entry.
type GameRound struct {
	ID                     string
	SettlementID           string
	RoundNumber            int
	Title                  string
	IsCompleted            bool
	ExcludedParticipantIDs []string
	Entries                []*GameRoundEntry
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Excludes reports whether the round excludes the given participant.
func (r *GameRound) Excludes(participantID string) bool {
	for _, id := range r.ExcludedParticipantIDs {
		if id == participantID {
			return true
		}
	}
	return false
}

// EntryFor returns the round entry for a participant, or nil.
func (r *GameRound) EntryFor(participantID string) *GameRoundEntry {
	for _, e := range r.Entries {
		if e.ParticipantID == participantID {
			return e
		}
	}
	return nil
}

// GameRoundEntry records one participant's signed result for one round.
// Positive means won, negative means lost.
type GameRoundEntry struct {
	ID            string
	RoundID       string
	ParticipantID string
	Amount        int64
	Memo          string
	CreatedAt     time.Time
}

// RoundValidation is the status report for a round. A round is
// Incomplete (missing entries), Unbalanced (nonzero total) or valid;
// only valid rounds may be accepted into the game ledger. The report
// never blocks storage by itself, that discipline belongs to the
// calling workflow.
type RoundValidation struct {
	IsValid             bool
	TotalAmount         int64
	MissingParticipants []string
	ErrorMessage        string
}
