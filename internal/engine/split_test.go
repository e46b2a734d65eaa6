package engine

import (
	"errors"
	"testing"

	"github.com/kimeasyn/settleup/internal/domain"
)

func TestAllocateEqual(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		participants []string
		want         []int64
		expectError  error
	}{
		{
			name:         "even division",
			total:        9000,
			participants: []string{"a", "b", "c"},
			want:         []int64{3000, 3000, 3000},
		},
		{
			name:         "first participant absorbs remainder",
			total:        10000,
			participants: []string{"a", "b", "c"},
			want:         []int64{3334, 3333, 3333},
		},
		{
			name:         "single participant",
			total:        777,
			participants: []string{"a"},
			want:         []int64{777},
		},
		{
			name:         "zero total",
			total:        0,
			participants: []string{"a", "b"},
			want:         []int64{0, 0},
		},
		{
			name:         "total smaller than participant count",
			total:        2,
			participants: []string{"a", "b", "c"},
			want:         []int64{2, 0, 0},
		},
		{
			name:         "no participants",
			total:        1000,
			participants: nil,
			expectError:  ErrNoParticipants,
		},
		{
			name:         "negative total",
			total:        -1,
			participants: []string{"a"},
			expectError:  ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := AllocateEqual(tt.total, tt.participants)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(shares) != len(tt.want) {
				t.Fatalf("expected %d shares, got %d", len(tt.want), len(shares))
			}
			for i, share := range shares {
				if share.ParticipantID != tt.participants[i] {
					t.Errorf("share %d: expected participant %s, got %s", i, tt.participants[i], share.ParticipantID)
				}
				if share.Share != tt.want[i] {
					t.Errorf("share %d: expected %d, got %d", i, tt.want[i], share.Share)
				}
			}
		})
	}
}

// The allocation must conserve the total exactly for any input, and the
// remainder always lands on the first participant.
func TestAllocateEqual_Conservation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}

	for total := int64(0); total < 500; total++ {
		for n := 1; n <= len(ids); n++ {
			shares, err := AllocateEqual(total, ids[:n])
			if err != nil {
				t.Fatalf("total=%d n=%d: %v", total, n, err)
			}

			var sum int64
			for _, s := range shares {
				sum += s.Share
			}
			if sum != total {
				t.Fatalf("total=%d n=%d: shares sum to %d", total, n, sum)
			}

			remainder := shares[0].Share - shares[len(shares)-1].Share
			if remainder < 0 || remainder >= int64(n) {
				t.Fatalf("total=%d n=%d: remainder %d outside [0,%d)", total, n, remainder, n)
			}
		}
	}
}

func TestValidateManualSplits(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		shares         []domain.SplitShare
		wantValid      bool
		wantDifference int64
		expectError    error
	}{
		{
			name:  "exact sum is valid",
			total: 10000,
			shares: []domain.SplitShare{
				{ParticipantID: "a", Share: 7000},
				{ParticipantID: "b", Share: 3000},
			},
			wantValid:      true,
			wantDifference: 0,
		},
		{
			name:  "over by one unit",
			total: 10000,
			shares: []domain.SplitShare{
				{ParticipantID: "a", Share: 7001},
				{ParticipantID: "b", Share: 3000},
			},
			wantValid:      false,
			wantDifference: 1,
		},
		{
			name:  "under by one unit",
			total: 10000,
			shares: []domain.SplitShare{
				{ParticipantID: "a", Share: 6999},
				{ParticipantID: "b", Share: 3000},
			},
			wantValid:      false,
			wantDifference: -1,
		},
		{
			name:           "empty shares against zero total",
			total:          0,
			shares:         nil,
			wantValid:      true,
			wantDifference: 0,
		},
		{
			name:  "zero share is allowed",
			total: 500,
			shares: []domain.SplitShare{
				{ParticipantID: "a", Share: 500},
				{ParticipantID: "b", Share: 0},
			},
			wantValid:      true,
			wantDifference: 0,
		},
		{
			name:  "negative share is a hard failure",
			total: 500,
			shares: []domain.SplitShare{
				{ParticipantID: "a", Share: 600},
				{ParticipantID: "b", Share: -100},
			},
			expectError: ErrNegativeShare,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateManualSplits(tt.total, tt.shares)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Valid != tt.wantValid {
				t.Errorf("expected valid=%v, got %v", tt.wantValid, result.Valid)
			}
			if result.Difference != tt.wantDifference {
				t.Errorf("expected difference=%d, got %d", tt.wantDifference, result.Difference)
			}
		})
	}
}

func TestValidateManualSplits_NegativeShareNamesParticipant(t *testing.T) {
	_, err := ValidateManualSplits(100, []domain.SplitShare{
		{ParticipantID: "p-bad", Share: -1},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); got != "share must be zero or positive: participant p-bad" {
		t.Errorf("unexpected error message: %s", got)
	}
}
