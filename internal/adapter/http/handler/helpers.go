package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/kimeasyn/settleup/internal/adapter/http/dto"
	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/engine"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSettlementNotFound),
		errors.Is(err, domain.ErrParticipantNotFound),
		errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrRoundNotFound),
		errors.Is(err, domain.ErrResultNotFound),
		errors.Is(err, domain.ErrInviteCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSettlementCompleted),
		errors.Is(err, domain.ErrRoundCompleted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSettlementType),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidSettlementTitle),
		errors.Is(err, domain.ErrInvalidParticipantName),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrMissingPayer),
		errors.Is(err, domain.ErrParticipantInactive),
		errors.Is(err, domain.ErrWrongSettlement),
		errors.Is(err, domain.ErrRoundNotValid),
		errors.Is(err, domain.ErrDuplicateEntry),
		errors.Is(err, domain.ErrEntryForExcluded),
		errors.Is(err, domain.ErrInviteCodeExpired):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNegativeShare),
		errors.Is(err, engine.ErrNegativeAmount),
		errors.Is(err, engine.ErrNoParticipants),
		errors.Is(err, engine.ErrSplitSumMismatch),
		errors.Is(err, engine.ErrUnbalancedInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrTypeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNoActiveParticipants),
		errors.Is(err, usecase.ErrNoExpenses),
		errors.Is(err, usecase.ErrNoRounds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
