package domain

import (
	"errors"
	"testing"
	"time"
)

func TestSettlementValidate(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	before := start.Add(-24 * time.Hour)

	tests := []struct {
		name       string
		settlement Settlement
		wantErr    error
	}{
		{
			name:       "valid travel settlement",
			settlement: Settlement{Title: "Jeju Trip", Type: SettlementTypeTravel},
		},
		{
			name:       "valid game settlement with dates",
			settlement: Settlement{Title: "Friday Poker", Type: SettlementTypeGame, StartDate: &start, EndDate: &end},
		},
		{
			name:       "empty title",
			settlement: Settlement{Title: "", Type: SettlementTypeTravel},
			wantErr:    ErrInvalidSettlementTitle,
		},
		{
			name:       "unknown type",
			settlement: Settlement{Title: "x", Type: "POKER"},
			wantErr:    ErrInvalidSettlementType,
		},
		{
			name:       "end before start",
			settlement: Settlement{Title: "x", Type: SettlementTypeTravel, StartDate: &start, EndDate: &before},
			wantErr:    ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settlement.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettlementIsCompleted(t *testing.T) {
	s := &Settlement{Status: SettlementStatusActive}
	if s.IsCompleted() {
		t.Error("active settlement reported as completed")
	}

	s.Status = SettlementStatusCompleted
	if !s.IsCompleted() {
		t.Error("completed settlement not reported as completed")
	}
}

func TestInviteCodeExpired(t *testing.T) {
	now := time.Now()
	code := &InviteCode{Code: "AB2C3D", ExpiresAt: now.Add(time.Hour)}

	if code.Expired(now) {
		t.Error("code expired before its deadline")
	}
	if !code.Expired(now.Add(2 * time.Hour)) {
		t.Error("code not expired after its deadline")
	}
}

func TestActiveParticipants(t *testing.T) {
	participants := []*Participant{
		{ID: "p-1", IsActive: true},
		{ID: "p-2", IsActive: false},
		{ID: "p-3", IsActive: true},
	}

	active := ActiveParticipants(participants)

	if len(active) != 2 {
		t.Fatalf("expected 2 active participants, got %d", len(active))
	}
	if active[0].ID != "p-1" || active[1].ID != "p-3" {
		t.Errorf("expected order preserved, got %s, %s", active[0].ID, active[1].ID)
	}
}
