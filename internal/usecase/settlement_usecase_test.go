package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
	"github.com/kimeasyn/settleup/internal/usecase/mocks"
)

func seedSettlement(repo *mocks.MockSettlementRepository, id string, typ domain.SettlementType, status domain.SettlementStatus) *domain.Settlement {
	s := &domain.Settlement{
		ID:        id,
		Title:     "Jeju Trip",
		Type:      typ,
		Status:    status,
		Currency:  "KRW",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		UpdatedAt: time.Now().UTC(),
	}
	_ = repo.Create(context.Background(), s)
	return s
}

func seedParticipant(repo *mocks.MockParticipantRepository, id, settlementID, name string, active bool) *domain.Participant {
	p := &domain.Participant{
		ID:           id,
		SettlementID: settlementID,
		Name:         name,
		IsActive:     active,
		JoinedAt:     time.Now().UTC(),
	}
	_ = repo.Create(context.Background(), p)
	return p
}

func newSettlementUseCase() (*usecase.SettlementUseCase, *mocks.MockSettlementRepository, *mocks.MockParticipantRepository, *mocks.MockInviteRepository) {
	settlementRepo := mocks.NewMockSettlementRepository()
	participantRepo := mocks.NewMockParticipantRepository()
	inviteRepo := mocks.NewMockInviteRepository()
	uc := usecase.NewSettlementUseCase(settlementRepo, participantRepo, inviteRepo, mocks.NewMockIDGenerator())
	return uc, settlementRepo, participantRepo, inviteRepo
}

func TestSettlementUseCase_CreateSettlement(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateSettlementInput
		expectedErr error
	}{
		{
			name: "travel settlement with initial participants",
			input: usecase.CreateSettlementInput{
				Title:            "Jeju Trip",
				Type:             domain.SettlementTypeTravel,
				Currency:         "KRW",
				ParticipantNames: []string{"Ann", "Ben", "Cho"},
			},
		},
		{
			name: "game settlement without participants",
			input: usecase.CreateSettlementInput{
				Title: "Friday Poker",
				Type:  domain.SettlementTypeGame,
			},
		},
		{
			name: "invalid type rejected",
			input: usecase.CreateSettlementInput{
				Title: "Mystery",
				Type:  domain.SettlementType("RAFFLE"),
			},
			expectedErr: domain.ErrInvalidSettlementType,
		},
		{
			name: "empty title rejected",
			input: usecase.CreateSettlementInput{
				Title: "   ",
				Type:  domain.SettlementTypeTravel,
			},
			expectedErr: domain.ErrInvalidSettlementTitle,
		},
		{
			name: "unknown currency rejected",
			input: usecase.CreateSettlementInput{
				Title:    "Jeju Trip",
				Type:     domain.SettlementTypeTravel,
				Currency: "DOGE",
			},
			expectedErr: domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, participantRepo, _ := newSettlementUseCase()

			settlement, err := uc.CreateSettlement(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if settlement.Status != domain.SettlementStatusActive {
				t.Errorf("expected ACTIVE status, got %s", settlement.Status)
			}
			if settlement.Currency == "" {
				t.Error("expected a default currency")
			}

			participants, err := participantRepo.ListBySettlement(context.Background(), settlement.ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(participants) != len(tt.input.ParticipantNames) {
				t.Errorf("expected %d participants, got %d", len(tt.input.ParticipantNames), len(participants))
			}
		})
	}
}

func TestSettlementUseCase_CompleteSettlement(t *testing.T) {
	uc, settlementRepo, _, _ := newSettlementUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusActive)

	settlement, err := uc.CompleteSettlement(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settlement.Status != domain.SettlementStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", settlement.Status)
	}

	if _, err := uc.CompleteSettlement(context.Background(), "s1"); !errors.Is(err, domain.ErrSettlementCompleted) {
		t.Fatalf("expected ErrSettlementCompleted, got %v", err)
	}
}

func TestSettlementUseCase_ReopenSettlement(t *testing.T) {
	uc, settlementRepo, _, _ := newSettlementUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusCompleted)

	settlement, err := uc.ReopenSettlement(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settlement.Status != domain.SettlementStatusActive {
		t.Fatalf("expected ACTIVE, got %s", settlement.Status)
	}
}

func TestSettlementUseCase_UpdateSettlement_CompletedRejected(t *testing.T) {
	uc, settlementRepo, _, _ := newSettlementUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusCompleted)

	title := "New Title"
	_, err := uc.UpdateSettlement(context.Background(), "s1", usecase.UpdateSettlementInput{Title: &title})
	if !errors.Is(err, domain.ErrSettlementCompleted) {
		t.Fatalf("expected ErrSettlementCompleted, got %v", err)
	}
}

func TestSettlementUseCase_InviteFlow(t *testing.T) {
	uc, settlementRepo, participantRepo, _ := newSettlementUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeGame, domain.SettlementStatusActive)

	invite, err := uc.CreateInviteCode(context.Background(), "s1", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invite.Code) != usecase.InviteCodeLength {
		t.Fatalf("expected %d-character code, got %q", usecase.InviteCodeLength, invite.Code)
	}

	participant, err := uc.JoinByInviteCode(context.Background(), invite.Code, "Dan", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if participant.SettlementID != "s1" {
		t.Errorf("expected settlement s1, got %s", participant.SettlementID)
	}
	if !participant.IsActive {
		t.Error("expected joined participant to be active")
	}

	participants, _ := participantRepo.ListBySettlement(context.Background(), "s1")
	if len(participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(participants))
	}
}

func TestSettlementUseCase_JoinByInviteCode_Expired(t *testing.T) {
	uc, settlementRepo, _, inviteRepo := newSettlementUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeGame, domain.SettlementStatusActive)

	_ = inviteRepo.Create(context.Background(), &domain.InviteCode{
		Code:         "OLD999",
		SettlementID: "s1",
		ExpiresAt:    time.Now().UTC().Add(-time.Minute),
	})

	_, err := uc.JoinByInviteCode(context.Background(), "OLD999", "Dan", nil)
	if !errors.Is(err, domain.ErrInviteCodeExpired) {
		t.Fatalf("expected ErrInviteCodeExpired, got %v", err)
	}
}

func TestSettlementUseCase_CreateInviteCode_CompletedRejected(t *testing.T) {
	uc, settlementRepo, _, _ := newSettlementUseCase()
	seedSettlement(settlementRepo, "s1", domain.SettlementTypeTravel, domain.SettlementStatusCompleted)

	_, err := uc.CreateInviteCode(context.Background(), "s1", time.Hour)
	if !errors.Is(err, domain.ErrSettlementCompleted) {
		t.Fatalf("expected ErrSettlementCompleted, got %v", err)
	}
}
