package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kimeasyn/settleup/internal/adapter/http/dto"
	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// ExpenseService defines the expense operations the handler needs.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, settlementID string) ([]*domain.Expense, error)
	UpdateExpense(ctx context.Context, id string, input usecase.UpdateExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	SetEqualSplits(ctx context.Context, expenseID string) (*domain.Expense, error)
	SetManualSplits(ctx context.Context, expenseID string, shares []domain.SplitShare) (*domain.Expense, domain.SplitValidation, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	service ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(service ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// Create records a new expense in a travel settlement.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), req.ToUseCaseInput(settlementID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	expense, err := h.service.GetExpense(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// ListBySettlement lists all expenses of a settlement.
func (h *ExpenseHandler) ListBySettlement(w http.ResponseWriter, r *http.Request) {
	settlementID := chi.URLParam(r, "id")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	expenses, err := h.service.ListExpenses(r.Context(), settlementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
	})
}

// Update edits descriptive fields of an expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.service.UpdateExpense(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete removes an expense and its splits.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetEqualSplits divides the expense equally among active participants.
func (h *ExpenseHandler) SetEqualSplits(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	expense, err := h.service.SetEqualSplits(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set equal splits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SetSplitsResponse{
		Expense:    dto.ExpenseFromDomain(expense),
		Validation: dto.SplitValidationResponse{Valid: true},
	})
}

// SetManualSplits applies caller-supplied shares. Shares that do not
// sum to the expense amount are reported back without being stored.
func (h *ExpenseHandler) SetManualSplits(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.SetManualSplitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, validation, err := h.service.SetManualSplits(r.Context(), id, req.ToShares())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set manual splits", err.Error())
		return
	}

	resp := dto.SetSplitsResponse{Validation: dto.SplitValidationFromDomain(validation)}
	status := http.StatusUnprocessableEntity
	if validation.Valid {
		resp.Expense = dto.ExpenseFromDomain(expense)
		status = http.StatusOK
	}

	writeJSON(w, status, resp)
}
