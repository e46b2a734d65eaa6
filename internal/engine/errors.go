package engine

import "errors"

var (
	// ErrNoParticipants is returned when an allocation would divide by
	// zero participants. Callers must guard before invoking.
	ErrNoParticipants = errors.New("at least one participant is required")

	// ErrNegativeAmount is returned for a negative expense total.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrNegativeShare is returned when a manual share is below zero.
	// Negative shares are never clamped.
	ErrNegativeShare = errors.New("share must be zero or positive")

	// ErrSplitSumMismatch is returned when an expense's finalized splits
	// do not sum to the expense amount.
	ErrSplitSumMismatch = errors.New("finalized splits do not sum to expense amount")

	// ErrUnbalancedInput is returned when balances handed to the debt
	// minimizer do not sum to zero. Emitting a wrong transfer silently
	// is never acceptable.
	ErrUnbalancedInput = errors.New("balances do not sum to zero")

	// ErrNoStatuses is returned when a summary is requested over an
	// empty game.
	ErrNoStatuses = errors.New("no participant statuses to summarize")
)
