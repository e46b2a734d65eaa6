package domain

import "time"

// Participant is a member of a settlement. Inactive participants keep
// their historical records but are excluded from new allocations.
type Participant struct {
	ID           string
	SettlementID string
	UserID       *string
	Name         string
	IsActive     bool
	JoinedAt     time.Time
}

// Validate validates participant fields on creation.
func (p *Participant) Validate() error {
	return ValidateParticipantName(p.Name)
}

// ActiveParticipants filters participants down to the active ones,
// preserving order.
func ActiveParticipants(participants []*Participant) []*Participant {
	active := make([]*Participant, 0, len(participants))
	for _, p := range participants {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}
