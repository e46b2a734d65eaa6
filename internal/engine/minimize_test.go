package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kimeasyn/settleup/internal/domain"
)

func balance(id string, amount int64) Balance {
	return Balance{ParticipantID: id, ParticipantName: id, Amount: amount}
}

func transfer(from, to string, amount int64) *domain.Transfer {
	return &domain.Transfer{
		FromParticipantID:   from,
		FromParticipantName: from,
		ToParticipantID:     to,
		ToParticipantName:   to,
		Amount:              amount,
	}
}

func TestMinimizeTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		want     []*domain.Transfer
	}{
		{
			name:     "one creditor two debtors",
			balances: []Balance{balance("a", 6000), balance("b", -3000), balance("c", -3000)},
			want:     []*domain.Transfer{transfer("b", "a", 3000), transfer("c", "a", 3000)},
		},
		{
			name:     "one debtor pays two creditors",
			balances: []Balance{balance("a", 3000), balance("b", 1000), balance("c", -4000)},
			want:     []*domain.Transfer{transfer("c", "a", 3000), transfer("c", "b", 1000)},
		},
		{
			name:     "already settled",
			balances: []Balance{balance("a", 0), balance("b", 0)},
			want:     []*domain.Transfer{},
		},
		{
			name:     "empty input",
			balances: nil,
			want:     []*domain.Transfer{},
		},
		{
			// First-available matching is load-bearing: the pairing
			// below would differ under largest-first matching, and the
			// transfer counts with it.
			name:     "first-available not largest-first",
			balances: []Balance{balance("a", 100), balance("b", 900), balance("c", -500), balance("d", -500)},
			want: []*domain.Transfer{
				transfer("c", "a", 100),
				transfer("c", "b", 400),
				transfer("d", "b", 500),
			},
		},
		{
			name:     "exact pairwise match",
			balances: []Balance{balance("a", 500), balance("b", -500), balance("c", 700), balance("d", -700)},
			want: []*domain.Transfer{
				transfer("b", "a", 500),
				transfer("d", "c", 700),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinimizeTransfers(tt.balances)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("transfers mismatch\n got: %v\nwant: %v", describe(got), describe(tt.want))
			}
		})
	}
}

func TestMinimizeTransfers_UnbalancedInput(t *testing.T) {
	_, err := MinimizeTransfers([]Balance{balance("a", 100), balance("b", -50)})
	if !errors.Is(err, ErrUnbalancedInput) {
		t.Fatalf("expected ErrUnbalancedInput, got %v", err)
	}
}

// Applying every emitted transfer must drive each balance to exactly
// zero, and the plan never exceeds creditors+debtors-1 transfers.
func TestMinimizeTransfers_SettlesExactly(t *testing.T) {
	cases := [][]Balance{
		{balance("a", 6000), balance("b", -3000), balance("c", -3000)},
		{balance("a", 3000), balance("b", 1000), balance("c", -4000)},
		{balance("a", 1), balance("b", -1)},
		{balance("a", 12345), balance("b", -111), balance("c", -11234), balance("d", -1000)},
		{balance("a", -777), balance("b", 800), balance("c", -23)},
	}

	for _, balances := range cases {
		transfers, err := MinimizeTransfers(balances)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		remaining := make(map[string]int64, len(balances))
		var creditors, debtors int
		for _, b := range balances {
			remaining[b.ParticipantID] = b.Amount
			switch {
			case b.Amount > 0:
				creditors++
			case b.Amount < 0:
				debtors++
			}
		}

		for _, tr := range transfers {
			if tr.Amount <= 0 {
				t.Fatalf("non-positive transfer amount %d", tr.Amount)
			}
			remaining[tr.FromParticipantID] += tr.Amount
			remaining[tr.ToParticipantID] -= tr.Amount
		}

		for id, amount := range remaining {
			if amount != 0 {
				t.Errorf("participant %s left with balance %d", id, amount)
			}
		}

		if creditors > 0 && debtors > 0 && len(transfers) > creditors+debtors-1 {
			t.Errorf("emitted %d transfers, bound is %d", len(transfers), creditors+debtors-1)
		}
	}
}

func TestMinimizeTransfers_Deterministic(t *testing.T) {
	balances := []Balance{
		balance("a", 5000), balance("b", -2000), balance("c", 1000),
		balance("d", -3000), balance("e", -1000),
	}

	first, err := MinimizeTransfers(balances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 100; i++ {
		again, err := MinimizeTransfers(balances)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

// Worked end-to-end scenario: two game rounds, aggregation, then the
// transfer plan. Both transfers come from the single net loser.
func TestGameRoundsToTransfers(t *testing.T) {
	participants := []*domain.Participant{
		participant("a", "Ann", true),
		participant("b", "Ben", true),
		participant("c", "Cho", true),
	}
	rounds := []*domain.GameRound{
		round("r1", nil, entry("a", 5000), entry("b", -3000), entry("c", -2000)),
		round("r2", nil, entry("a", -2000), entry("b", 4000), entry("c", -2000)),
	}

	statuses := AggregateGameStatus(participants, rounds)
	transfers, err := MinimizeTransfers(BalancesFromGame(statuses))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(transfers))
	}

	var total int64
	for _, tr := range transfers {
		if tr.FromParticipantID != "c" {
			t.Errorf("expected all transfers from c, got from %s", tr.FromParticipantID)
		}
		total += tr.Amount
	}
	if total != 4000 {
		t.Errorf("expected transfers totaling 4000, got %d", total)
	}
}

func describe(transfers []*domain.Transfer) []domain.Transfer {
	out := make([]domain.Transfer, len(transfers))
	for i, tr := range transfers {
		out[i] = *tr
	}
	return out
}
