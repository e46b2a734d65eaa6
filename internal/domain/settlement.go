package domain

import "time"

// SettlementType distinguishes the two ledger kinds a settlement can hold.
type SettlementType string

const (
	SettlementTypeTravel SettlementType = "TRAVEL"
	SettlementTypeGame   SettlementType = "GAME"
)

// SettlementStatus represents the lifecycle state of a settlement.
type SettlementStatus string

const (
	SettlementStatusActive    SettlementStatus = "ACTIVE"
	SettlementStatusCompleted SettlementStatus = "COMPLETED"
)

// Settlement is a named group session containing participants and either
// expenses (travel) or game rounds (game).
type Settlement struct {
	ID          string
	Title       string
	Type        SettlementType
	Status      SettlementStatus
	CreatorID   string
	Description string
	Currency    string
	StartDate   *time.Time
	EndDate     *time.Time
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates settlement fields on creation.
func (s *Settlement) Validate() error {
	if err := ValidateSettlementTitle(s.Title); err != nil {
		return err
	}

	if s.Type != SettlementTypeTravel && s.Type != SettlementTypeGame {
		return ErrInvalidSettlementType
	}

	if s.StartDate != nil && s.EndDate != nil && s.EndDate.Before(*s.StartDate) {
		return ErrInvalidDateRange
	}

	return nil
}

// IsCompleted reports whether the settlement is closed for edits.
func (s *Settlement) IsCompleted() bool {
	return s.Status == SettlementStatusCompleted
}

// InviteCode grants access to a settlement to anyone who presents it.
type InviteCode struct {
	Code         string
	SettlementID string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// Expired reports whether the code is no longer usable at t.
func (c *InviteCode) Expired(t time.Time) bool {
	return t.After(c.ExpiresAt)
}
