package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrInvalidSettlementTitle = errors.New("invalid settlement title")
	ErrInvalidParticipantName = errors.New("invalid participant name")
	ErrInvalidCurrency        = errors.New("invalid currency code")
	ErrAmountTooLarge         = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxTitleLength           = 100
	MaxParticipantNameLength = 50
	MaxAmount                = int64(1_000_000_000_000) // smallest currency unit
)

// Valid currency codes (ISO 4217, the subset the clients offer)
var validCurrencies = map[string]bool{
	"KRW": true, "USD": true, "EUR": true, "JPY": true,
	"GBP": true, "CNY": true, "AUD": true, "CAD": true,
	"SGD": true, "HKD": true, "THB": true, "VND": true,
}

// ValidateSettlementTitle validates a settlement title.
func ValidateSettlementTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidSettlementTitle)
	}

	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidSettlementTitle, MaxTitleLength)
	}

	return nil
}

// ValidateParticipantName validates a participant name.
func ValidateParticipantName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidParticipantName)
	}

	if len(name) > MaxParticipantNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidParticipantName, MaxParticipantNameLength)
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAmount validates a monetary amount in the smallest currency unit.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if amount > MaxAmount {
		return fmt.Errorf("%w: maximum amount is %d", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 200
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
