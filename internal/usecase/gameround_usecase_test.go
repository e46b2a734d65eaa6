package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
	"github.com/kimeasyn/settleup/internal/usecase/mocks"
)

type roundFixture struct {
	uc              *usecase.GameRoundUseCase
	settlementRepo  *mocks.MockSettlementRepository
	participantRepo *mocks.MockParticipantRepository
	roundRepo       *mocks.MockGameRoundRepository
}

func newRoundFixture() *roundFixture {
	f := &roundFixture{
		settlementRepo:  mocks.NewMockSettlementRepository(),
		participantRepo: mocks.NewMockParticipantRepository(),
		roundRepo:       mocks.NewMockGameRoundRepository(),
	}
	f.uc = usecase.NewGameRoundUseCase(
		mocks.NewMockTransactionManager(),
		f.settlementRepo,
		f.participantRepo,
		f.roundRepo,
		mocks.NewMockIDGenerator(),
	)
	return f
}

func (f *roundFixture) seedGameWorld() {
	seedSettlement(f.settlementRepo, "s1", domain.SettlementTypeGame, domain.SettlementStatusActive)
	seedParticipant(f.participantRepo, "p1", "s1", "Ann", true)
	seedParticipant(f.participantRepo, "p2", "s1", "Ben", true)
	seedParticipant(f.participantRepo, "p3", "s1", "Cho", true)
}

func TestGameRoundUseCase_CreateRound(t *testing.T) {
	f := newRoundFixture()
	f.seedGameWorld()

	first, err := f.uc.CreateRound(context.Background(), usecase.CreateRoundInput{SettlementID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.RoundNumber != 1 || first.Title != "Round 1" {
		t.Errorf("expected Round 1, got number=%d title=%q", first.RoundNumber, first.Title)
	}

	second, err := f.uc.CreateRound(context.Background(), usecase.CreateRoundInput{SettlementID: "s1", Title: "Final"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.RoundNumber != 2 || second.Title != "Final" {
		t.Errorf("expected round 2 titled Final, got number=%d title=%q", second.RoundNumber, second.Title)
	}
}

func TestGameRoundUseCase_CreateRound_TravelRejected(t *testing.T) {
	f := newRoundFixture()
	seedSettlement(f.settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusActive)

	_, err := f.uc.CreateRound(context.Background(), usecase.CreateRoundInput{SettlementID: "s1"})
	if !errors.Is(err, usecase.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestGameRoundUseCase_CreateRound_UnknownExclusionRejected(t *testing.T) {
	f := newRoundFixture()
	f.seedGameWorld()

	_, err := f.uc.CreateRound(context.Background(), usecase.CreateRoundInput{
		SettlementID:           "s1",
		ExcludedParticipantIDs: []string{"zz"},
	})
	if !errors.Is(err, domain.ErrWrongSettlement) {
		t.Fatalf("expected ErrWrongSettlement, got %v", err)
	}
}

func TestGameRoundUseCase_SaveEntries(t *testing.T) {
	tests := []struct {
		name          string
		excluded      []string
		inputs        []usecase.EntryInput
		wantValid     bool
		wantTotal     int64
		wantErrorText string
		expectedErr   error
	}{
		{
			name: "balanced complete round validates clean",
			inputs: []usecase.EntryInput{
				{ParticipantID: "p1", Amount: 5000},
				{ParticipantID: "p2", Amount: -3000},
				{ParticipantID: "p3", Amount: -2000},
			},
			wantValid: true,
		},
		{
			name: "unbalanced entries stored but flagged",
			inputs: []usecase.EntryInput{
				{ParticipantID: "p1", Amount: 5000},
				{ParticipantID: "p2", Amount: -3000},
				{ParticipantID: "p3", Amount: -1000},
			},
			wantValid:     false,
			wantTotal:     1000,
			wantErrorText: "round total is 1000, must be 0",
		},
		{
			name: "missing entries stored but flagged",
			inputs: []usecase.EntryInput{
				{ParticipantID: "p1", Amount: 5000},
				{ParticipantID: "p2", Amount: -5000},
			},
			wantValid:     false,
			wantErrorText: "missing amounts for: Cho",
		},
		{
			name:     "entry for excluded participant rejected",
			excluded: []string{"p3"},
			inputs: []usecase.EntryInput{
				{ParticipantID: "p1", Amount: 2000},
				{ParticipantID: "p3", Amount: -2000},
			},
			expectedErr: domain.ErrEntryForExcluded,
		},
		{
			name: "duplicate participant rejected",
			inputs: []usecase.EntryInput{
				{ParticipantID: "p1", Amount: 2000},
				{ParticipantID: "p1", Amount: -2000},
			},
			expectedErr: domain.ErrDuplicateEntry,
		},
		{
			name: "stranger rejected",
			inputs: []usecase.EntryInput{
				{ParticipantID: "zz", Amount: 2000},
			},
			expectedErr: domain.ErrWrongSettlement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoundFixture()
			f.seedGameWorld()
			round, err := f.uc.CreateRound(context.Background(), usecase.CreateRoundInput{
				SettlementID:           "s1",
				ExcludedParticipantIDs: tt.excluded,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			saved, validation, err := f.uc.SaveEntries(context.Background(), round.ID, tt.inputs)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(saved.Entries) != len(tt.inputs) {
				t.Errorf("expected %d stored entries, got %d", len(tt.inputs), len(saved.Entries))
			}
			if validation.IsValid != tt.wantValid {
				t.Errorf("expected valid=%v, got %v", tt.wantValid, validation.IsValid)
			}
			if validation.TotalAmount != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, validation.TotalAmount)
			}
			if validation.ErrorMessage != tt.wantErrorText {
				t.Errorf("expected message %q, got %q", tt.wantErrorText, validation.ErrorMessage)
			}
		})
	}
}

func TestGameRoundUseCase_CompleteRound(t *testing.T) {
	f := newRoundFixture()
	f.seedGameWorld()
	round, _ := f.uc.CreateRound(context.Background(), usecase.CreateRoundInput{SettlementID: "s1"})

	// Incomplete round must not complete.
	if _, err := f.uc.CompleteRound(context.Background(), round.ID); !errors.Is(err, domain.ErrRoundNotValid) {
		t.Fatalf("expected ErrRoundNotValid, got %v", err)
	}

	_, _, err := f.uc.SaveEntries(context.Background(), round.ID, []usecase.EntryInput{
		{ParticipantID: "p1", Amount: 5000},
		{ParticipantID: "p2", Amount: -3000},
		{ParticipantID: "p3", Amount: -2000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completed, err := f.uc.CompleteRound(context.Background(), round.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed.IsCompleted {
		t.Fatal("expected round to be completed")
	}

	// Completed rounds are frozen.
	if _, _, err := f.uc.SaveEntries(context.Background(), round.ID, nil); !errors.Is(err, domain.ErrRoundCompleted) {
		t.Fatalf("expected ErrRoundCompleted, got %v", err)
	}
	if _, err := f.uc.CompleteRound(context.Background(), round.ID); !errors.Is(err, domain.ErrRoundCompleted) {
		t.Fatalf("expected ErrRoundCompleted, got %v", err)
	}
}

func TestGameRoundUseCase_UpdateRound(t *testing.T) {
	f := newRoundFixture()
	f.seedGameWorld()
	round, _ := f.uc.CreateRound(context.Background(), usecase.CreateRoundInput{SettlementID: "s1"})

	title := "Rematch"
	updated, err := f.uc.UpdateRound(context.Background(), round.ID, usecase.UpdateRoundInput{
		Title:                  &title,
		ExcludedParticipantIDs: []string{"p3"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Rematch" {
		t.Errorf("expected title Rematch, got %q", updated.Title)
	}
	if !updated.Excludes("p3") {
		t.Error("expected p3 to be excluded")
	}
}
