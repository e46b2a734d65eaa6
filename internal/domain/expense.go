package domain

import "time"

// Expense is a single shared cost in a travel settlement. Amount is in
// the smallest currency unit and immutable once created.
type Expense struct {
	ID           string
	SettlementID string
	PayerID      string
	Amount       int64
	Category     string
	Description  string
	ExpenseDate  time.Time
	Splits       []*ExpenseSplit
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates expense fields on creation.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if e.PayerID == "" {
		return ErrMissingPayer
	}
	return ValidateAmount(e.Amount)
}

// HasSplits reports whether the expense carries finalized splits. An
// expense without splits is divided equally among the currently active
// participants when balances are computed.
func (e *Expense) HasSplits() bool {
	return len(e.Splits) > 0
}

// ExpenseSplit is the finalized portion of one expense attributed to one
// participant. For any finalized expense the shares sum to the expense
// amount exactly; a mismatch is a validation error, never rounding.
type ExpenseSplit struct {
	ID            string
	ExpenseID     string
	ParticipantID string
	Share         int64
}

// SplitShare is one participant's computed portion of an expense.
type SplitShare struct {
	ParticipantID string
	Share         int64
}

// SplitValidation is the outcome of checking manual shares against an
// expense amount. An in-progress mismatch is reported as data so the
// caller can display it; it is not an error.
type SplitValidation struct {
	Valid      bool
	Difference int64
}
