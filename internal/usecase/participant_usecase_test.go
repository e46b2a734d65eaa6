package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
	"github.com/kimeasyn/settleup/internal/usecase/mocks"
)

func newParticipantUseCase() (*usecase.ParticipantUseCase, *mocks.MockSettlementRepository, *mocks.MockParticipantRepository) {
	settlementRepo := mocks.NewMockSettlementRepository()
	participantRepo := mocks.NewMockParticipantRepository()
	uc := usecase.NewParticipantUseCase(settlementRepo, participantRepo, mocks.NewMockIDGenerator())
	return uc, settlementRepo, participantRepo
}

func TestParticipantUseCase_AddParticipant(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.SettlementStatus
		input       usecase.AddParticipantInput
		expectedErr error
	}{
		{
			name:   "adds active participant",
			status: domain.SettlementStatusActive,
			input:  usecase.AddParticipantInput{SettlementID: "s1", Name: "Ann"},
		},
		{
			name:        "completed settlement rejected",
			status:      domain.SettlementStatusCompleted,
			input:       usecase.AddParticipantInput{SettlementID: "s1", Name: "Ann"},
			expectedErr: domain.ErrSettlementCompleted,
		},
		{
			name:        "blank name rejected",
			status:      domain.SettlementStatusActive,
			input:       usecase.AddParticipantInput{SettlementID: "s1", Name: "   "},
			expectedErr: domain.ErrInvalidParticipantName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, settlementRepo, _ := newParticipantUseCase()
			seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, tt.status)

			participant, err := uc.AddParticipant(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !participant.IsActive {
				t.Error("expected new participant to be active")
			}
		})
	}
}

func TestParticipantUseCase_AddParticipant_UnknownSettlement(t *testing.T) {
	uc, _, _ := newParticipantUseCase()

	_, err := uc.AddParticipant(context.Background(), usecase.AddParticipantInput{SettlementID: "nope", Name: "Ann"})
	if !errors.Is(err, domain.ErrSettlementNotFound) {
		t.Fatalf("expected ErrSettlementNotFound, got %v", err)
	}
}

func TestParticipantUseCase_DeactivateAndReactivate(t *testing.T) {
	uc, settlementRepo, participantRepo := newParticipantUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusActive)
	seedParticipant(participantRepo, "p1", "s1", "Ann", true)

	participant, err := uc.DeactivateParticipant(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if participant.IsActive {
		t.Fatal("expected participant to be inactive")
	}

	participant, err = uc.ReactivateParticipant(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !participant.IsActive {
		t.Fatal("expected participant to be active again")
	}
}

func TestParticipantUseCase_DeactivateOnCompletedSettlement(t *testing.T) {
	uc, settlementRepo, participantRepo := newParticipantUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusCompleted)
	seedParticipant(participantRepo, "p1", "s1", "Ann", true)

	_, err := uc.DeactivateParticipant(context.Background(), "p1")
	if !errors.Is(err, domain.ErrSettlementCompleted) {
		t.Fatalf("expected ErrSettlementCompleted, got %v", err)
	}
}

func TestParticipantUseCase_RenameParticipant(t *testing.T) {
	uc, settlementRepo, participantRepo := newParticipantUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusActive)
	seedParticipant(participantRepo, "p1", "s1", "Ann", true)

	participant, err := uc.RenameParticipant(context.Background(), "p1", "  Annie ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if participant.Name != "Annie" {
		t.Fatalf("expected trimmed name Annie, got %q", participant.Name)
	}
}
