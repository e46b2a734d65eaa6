package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kimeasyn/settleup/internal/adapter/http/dto"
	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/engine"
	"github.com/kimeasyn/settleup/internal/usecase"
)

type expenseServiceStub struct {
	createFn          func(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error)
	getFn             func(ctx context.Context, id string) (*domain.Expense, error)
	listFn            func(ctx context.Context, settlementID string) ([]*domain.Expense, error)
	updateFn          func(ctx context.Context, id string, input usecase.UpdateExpenseInput) (*domain.Expense, error)
	deleteFn          func(ctx context.Context, id string) error
	setEqualSplitsFn  func(ctx context.Context, expenseID string) (*domain.Expense, error)
	setManualSplitsFn func(ctx context.Context, expenseID string, shares []domain.SplitShare) (*domain.Expense, domain.SplitValidation, error)
}

func (s *expenseServiceStub) CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error) {
	return s.createFn(ctx, input)
}

func (s *expenseServiceStub) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return s.getFn(ctx, id)
}

func (s *expenseServiceStub) ListExpenses(ctx context.Context, settlementID string) ([]*domain.Expense, error) {
	return s.listFn(ctx, settlementID)
}

func (s *expenseServiceStub) UpdateExpense(ctx context.Context, id string, input usecase.UpdateExpenseInput) (*domain.Expense, error) {
	return s.updateFn(ctx, id, input)
}

func (s *expenseServiceStub) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *expenseServiceStub) SetEqualSplits(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.setEqualSplitsFn(ctx, expenseID)
}

func (s *expenseServiceStub) SetManualSplits(ctx context.Context, expenseID string, shares []domain.SplitShare) (*domain.Expense, domain.SplitValidation, error) {
	return s.setManualSplitsFn(ctx, expenseID, shares)
}

func TestExpenseHandler_Create_Success(t *testing.T) {
	expense := &domain.Expense{ID: "ex-1", SettlementID: "st-1", PayerID: "p-1", Amount: 30000}

	var captured usecase.CreateExpenseInput
	h := NewExpenseHandler(&expenseServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error) {
			captured = input
			return expense, nil
		},
	})

	body, _ := json.Marshal(dto.CreateExpenseRequest{PayerID: "p-1", Amount: 30000, Category: "food"})
	req := httptest.NewRequest(http.MethodPost, "/settlements/st-1/expenses", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "st-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.SettlementID != "st-1" || captured.PayerID != "p-1" || captured.Amount != 30000 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestExpenseHandler_Create_TypeMismatch(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error) {
			return nil, usecase.ErrTypeMismatch
		},
	})

	body, _ := json.Marshal(dto.CreateExpenseRequest{PayerID: "p-1", Amount: 1000})
	req := httptest.NewRequest(http.MethodPost, "/settlements/st-1/expenses", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "st-1")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseHandler_SetEqualSplits(t *testing.T) {
	expense := &domain.Expense{
		ID:     "ex-1",
		Amount: 10000,
		Splits: []*domain.ExpenseSplit{
			{ParticipantID: "p-1", Share: 3334},
			{ParticipantID: "p-2", Share: 3333},
			{ParticipantID: "p-3", Share: 3333},
		},
	}

	h := NewExpenseHandler(&expenseServiceStub{
		setEqualSplitsFn: func(ctx context.Context, expenseID string) (*domain.Expense, error) {
			return expense, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/expenses/ex-1/splits/equal", nil)
	req = setChiURLParam(req, "id", "ex-1")
	rec := httptest.NewRecorder()

	h.SetEqualSplits(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SetSplitsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Validation.Valid {
		t.Fatal("expected valid split response")
	}
	if len(resp.Expense.Splits) != 3 || resp.Expense.Splits[0].Share != 3334 {
		t.Fatalf("unexpected splits: %+v", resp.Expense.Splits)
	}
}

func TestExpenseHandler_SetManualSplits(t *testing.T) {
	tests := []struct {
		name       string
		expense    *domain.Expense
		validation domain.SplitValidation
		err        error
		wantStatus int
	}{
		{
			name:       "exact shares accepted",
			expense:    &domain.Expense{ID: "ex-1", Amount: 10000},
			validation: domain.SplitValidation{Valid: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "mismatched shares reported",
			validation: domain.SplitValidation{Valid: false, Difference: -1000},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "negative share rejected",
			err:        engine.ErrNegativeShare,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "stranger participant rejected",
			err:        domain.ErrWrongSettlement,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewExpenseHandler(&expenseServiceStub{
				setManualSplitsFn: func(ctx context.Context, expenseID string, shares []domain.SplitShare) (*domain.Expense, domain.SplitValidation, error) {
					return tt.expense, tt.validation, tt.err
				},
			})

			body, _ := json.Marshal(dto.SetManualSplitsRequest{
				Shares: []dto.SplitShareItem{{ParticipantID: "p-1", Share: 10000}},
			})
			req := httptest.NewRequest(http.MethodPut, "/expenses/ex-1/splits", bytes.NewReader(body))
			req = setChiURLParam(req, "id", "ex-1")
			rec := httptest.NewRecorder()

			h.SetManualSplits(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			if tt.err == nil && !tt.validation.Valid {
				var resp dto.SetSplitsResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Validation.Difference != tt.validation.Difference {
					t.Fatalf("expected difference %d, got %d", tt.validation.Difference, resp.Validation.Difference)
				}
				if resp.Expense != nil {
					t.Fatal("expected no expense payload for rejected shares")
				}
			}
		})
	}
}

func TestExpenseHandler_Delete(t *testing.T) {
	h := NewExpenseHandler(&expenseServiceStub{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	})

	req := httptest.NewRequest(http.MethodDelete, "/expenses/ex-1", nil)
	req = setChiURLParam(req, "id", "ex-1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
