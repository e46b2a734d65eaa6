package dto

import (
	"time"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// CreateSettlementRequest represents a request to create a settlement.
type CreateSettlementRequest struct {
	Title            string     `json:"title"`
	Type             string     `json:"type"`
	CreatorID        string     `json:"creator_id"`
	Description      string     `json:"description,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	ParticipantNames []string   `json:"participant_names,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSettlementRequest) ToUseCaseInput() usecase.CreateSettlementInput {
	return usecase.CreateSettlementInput{
		Title:            r.Title,
		Type:             domain.SettlementType(r.Type),
		CreatorID:        r.CreatorID,
		Description:      r.Description,
		Currency:         r.Currency,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ParticipantNames: r.ParticipantNames,
	}
}

// UpdateSettlementRequest represents a request to update a settlement.
// Absent fields are left unchanged.
type UpdateSettlementRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSettlementRequest) ToUseCaseInput() usecase.UpdateSettlementInput {
	return usecase.UpdateSettlementInput{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// AddParticipantRequest represents a request to add a participant.
type AddParticipantRequest struct {
	Name   string  `json:"name"`
	UserID *string `json:"user_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddParticipantRequest) ToUseCaseInput(settlementID string) usecase.AddParticipantInput {
	return usecase.AddParticipantInput{
		SettlementID: settlementID,
		Name:         r.Name,
		UserID:       r.UserID,
	}
}

// RenameParticipantRequest represents a request to rename a participant.
type RenameParticipantRequest struct {
	Name string `json:"name"`
}

// JoinSettlementRequest represents a request to join via invite code.
type JoinSettlementRequest struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	UserID *string `json:"user_id,omitempty"`
}

// CreateExpenseRequest represents a request to record an expense.
type CreateExpenseRequest struct {
	PayerID     string     `json:"payer_id"`
	Amount      int64      `json:"amount"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	ExpenseDate *time.Time `json:"expense_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(settlementID string) usecase.CreateExpenseInput {
	input := usecase.CreateExpenseInput{
		SettlementID: settlementID,
		PayerID:      r.PayerID,
		Amount:       r.Amount,
		Category:     r.Category,
		Description:  r.Description,
	}
	if r.ExpenseDate != nil {
		input.ExpenseDate = *r.ExpenseDate
	}
	return input
}

// UpdateExpenseRequest represents a request to update expense details.
// The amount is immutable once recorded.
type UpdateExpenseRequest struct {
	Category    *string    `json:"category,omitempty"`
	Description *string    `json:"description,omitempty"`
	ExpenseDate *time.Time `json:"expense_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput() usecase.UpdateExpenseInput {
	return usecase.UpdateExpenseInput{
		Category:    r.Category,
		Description: r.Description,
		ExpenseDate: r.ExpenseDate,
	}
}

// SplitShareItem is one participant's share in a manual split request.
type SplitShareItem struct {
	ParticipantID string `json:"participant_id"`
	Share         int64  `json:"share"`
}

// SetManualSplitsRequest represents a request to set manual splits.
type SetManualSplitsRequest struct {
	Shares []SplitShareItem `json:"shares"`
}

// ToShares converts to domain split shares.
func (r *SetManualSplitsRequest) ToShares() []domain.SplitShare {
	shares := make([]domain.SplitShare, len(r.Shares))
	for i, s := range r.Shares {
		shares[i] = domain.SplitShare{
			ParticipantID: s.ParticipantID,
			Share:         s.Share,
		}
	}
	return shares
}

// CreateRoundRequest represents a request to open a game round.
type CreateRoundRequest struct {
	Title                  string   `json:"title,omitempty"`
	ExcludedParticipantIDs []string `json:"excluded_participant_ids,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRoundRequest) ToUseCaseInput(settlementID string) usecase.CreateRoundInput {
	return usecase.CreateRoundInput{
		SettlementID:           settlementID,
		Title:                  r.Title,
		ExcludedParticipantIDs: r.ExcludedParticipantIDs,
	}
}

// UpdateRoundRequest represents a request to update an open round.
type UpdateRoundRequest struct {
	Title                  *string  `json:"title,omitempty"`
	ExcludedParticipantIDs []string `json:"excluded_participant_ids,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateRoundRequest) ToUseCaseInput() usecase.UpdateRoundInput {
	return usecase.UpdateRoundInput{
		Title:                  r.Title,
		ExcludedParticipantIDs: r.ExcludedParticipantIDs,
	}
}

// RoundEntryItem is one participant's result in a round entry request.
type RoundEntryItem struct {
	ParticipantID string `json:"participant_id"`
	Amount        int64  `json:"amount"`
	Memo          string `json:"memo,omitempty"`
}

// SaveEntriesRequest represents a request to replace a round's entries.
type SaveEntriesRequest struct {
	Entries []RoundEntryItem `json:"entries"`
}

// ToUseCaseInputs converts to use case entry inputs.
func (r *SaveEntriesRequest) ToUseCaseInputs() []usecase.EntryInput {
	inputs := make([]usecase.EntryInput, len(r.Entries))
	for i, e := range r.Entries {
		inputs[i] = usecase.EntryInput{
			ParticipantID: e.ParticipantID,
			Amount:        e.Amount,
			Memo:          e.Memo,
		}
	}
	return inputs
}
