package usecase

import "errors"

var (
	// ErrTypeMismatch is returned when an operation is invoked against
	// the wrong settlement kind, e.g. adding an expense to a game.
	ErrTypeMismatch = errors.New("operation does not apply to this settlement type")

	// ErrNoActiveParticipants is returned when a calculation is requested
	// for a settlement whose participants are all inactive or absent.
	ErrNoActiveParticipants = errors.New("settlement has no active participants")

	// ErrNoExpenses is returned when a travel calculation has nothing to work on.
	ErrNoExpenses = errors.New("settlement has no expenses to calculate")

	// ErrNoRounds is returned when a game calculation has nothing to work on.
	ErrNoRounds = errors.New("settlement has no game rounds to calculate")
)
