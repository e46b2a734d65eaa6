package domain

import "errors"

var (
	// Settlement errors
	ErrSettlementNotFound    = errors.New("settlement not found")
	ErrSettlementCompleted   = errors.New("settlement is completed")
	ErrInvalidSettlementType = errors.New("invalid settlement type")
	ErrInvalidDateRange      = errors.New("end date is before start date")

	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantInactive = errors.New("participant is inactive")
	ErrWrongSettlement     = errors.New("participant does not belong to this settlement")

	// Expense errors
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrMissingPayer    = errors.New("expense requires a payer")

	// Game round errors
	ErrRoundNotFound      = errors.New("game round not found")
	ErrRoundNotValid      = errors.New("round entries are incomplete or unbalanced")
	ErrRoundCompleted     = errors.New("round is already completed")
	ErrDuplicateEntry     = errors.New("participant already has an entry in this round")
	ErrEntryForExcluded   = errors.New("entry supplied for excluded participant")
	ErrResultNotFound     = errors.New("settlement result not found")
	ErrInviteCodeNotFound = errors.New("invite code not found")
	ErrInviteCodeExpired  = errors.New("invite code is expired")
)
