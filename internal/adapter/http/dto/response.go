package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kimeasyn/settleup/internal/domain"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// SettlementResponse represents a settlement in API responses.
type SettlementResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	CreatorID   string     `json:"creator_id"`
	Description string     `json:"description,omitempty"`
	Currency    string     `json:"currency"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SettlementFromDomain converts a domain settlement to a response.
func SettlementFromDomain(s *domain.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:          s.ID,
		Title:       s.Title,
		Type:        string(s.Type),
		Status:      string(s.Status),
		CreatorID:   s.CreatorID,
		Description: s.Description,
		Currency:    s.Currency,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SettlementsFromDomain converts domain settlements to responses.
func SettlementsFromDomain(settlements []*domain.Settlement) []*SettlementResponse {
	result := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementFromDomain(s)
	}
	return result
}

// ListSettlementsResponse wraps a settlement listing.
type ListSettlementsResponse struct {
	Settlements []*SettlementResponse `json:"settlements"`
}

// ParticipantResponse represents a participant in API responses.
type ParticipantResponse struct {
	ID           string    `json:"id"`
	SettlementID string    `json:"settlement_id"`
	UserID       *string   `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	JoinedAt     time.Time `json:"joined_at"`
}

// ParticipantFromDomain converts a domain participant to a response.
func ParticipantFromDomain(p *domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:           p.ID,
		SettlementID: p.SettlementID,
		UserID:       p.UserID,
		Name:         p.Name,
		IsActive:     p.IsActive,
		JoinedAt:     p.JoinedAt,
	}
}

// ParticipantsFromDomain converts domain participants to responses.
func ParticipantsFromDomain(participants []*domain.Participant) []*ParticipantResponse {
	result := make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		result[i] = ParticipantFromDomain(p)
	}
	return result
}

// ListParticipantsResponse wraps a participant listing.
type ListParticipantsResponse struct {
	Participants []*ParticipantResponse `json:"participants"`
}

// InviteCodeResponse represents an invite code in API responses.
type InviteCodeResponse struct {
	Code         string    `json:"code"`
	SettlementID string    `json:"settlement_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// InviteCodeFromDomain converts a domain invite code to a response.
func InviteCodeFromDomain(c *domain.InviteCode) *InviteCodeResponse {
	return &InviteCodeResponse{
		Code:         c.Code,
		SettlementID: c.SettlementID,
		ExpiresAt:    c.ExpiresAt,
		CreatedAt:    c.CreatedAt,
	}
}

// ExpenseSplitResponse represents one split line of an expense.
type ExpenseSplitResponse struct {
	ParticipantID string `json:"participant_id"`
	Share         int64  `json:"share"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID           string                  `json:"id"`
	SettlementID string                  `json:"settlement_id"`
	PayerID      string                  `json:"payer_id"`
	Amount       int64                   `json:"amount"`
	Category     string                  `json:"category,omitempty"`
	Description  string                  `json:"description,omitempty"`
	ExpenseDate  time.Time               `json:"expense_date"`
	Splits       []*ExpenseSplitResponse `json:"splits,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:           e.ID,
		SettlementID: e.SettlementID,
		PayerID:      e.PayerID,
		Amount:       e.Amount,
		Category:     e.Category,
		Description:  e.Description,
		ExpenseDate:  e.ExpenseDate,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	for _, s := range e.Splits {
		resp.Splits = append(resp.Splits, &ExpenseSplitResponse{
			ParticipantID: s.ParticipantID,
			Share:         s.Share,
		})
	}
	return resp
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ListExpensesResponse wraps an expense listing.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
}

// SplitValidationResponse reports the outcome of a manual split attempt.
type SplitValidationResponse struct {
	Valid      bool  `json:"valid"`
	Difference int64 `json:"difference"`
}

// SplitValidationFromDomain converts a domain split validation.
func SplitValidationFromDomain(v domain.SplitValidation) SplitValidationResponse {
	return SplitValidationResponse{Valid: v.Valid, Difference: v.Difference}
}

// SetSplitsResponse is returned by both split finalization endpoints.
// Expense is nil when the shares were rejected without persisting.
type SetSplitsResponse struct {
	Expense    *ExpenseResponse        `json:"expense,omitempty"`
	Validation SplitValidationResponse `json:"validation"`
}

// RoundEntryResponse represents one entry of a game round.
type RoundEntryResponse struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	Amount        int64     `json:"amount"`
	Memo          string    `json:"memo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GameRoundResponse represents a game round in API responses.
type GameRoundResponse struct {
	ID                     string                `json:"id"`
	SettlementID           string                `json:"settlement_id"`
	RoundNumber            int                   `json:"round_number"`
	Title                  string                `json:"title"`
	IsCompleted            bool                  `json:"is_completed"`
	ExcludedParticipantIDs []string              `json:"excluded_participant_ids,omitempty"`
	Entries                []*RoundEntryResponse `json:"entries,omitempty"`
	CreatedAt              time.Time             `json:"created_at"`
	UpdatedAt              time.Time             `json:"updated_at"`
}

// GameRoundFromDomain converts a domain game round to a response.
func GameRoundFromDomain(r *domain.GameRound) *GameRoundResponse {
	resp := &GameRoundResponse{
		ID:                     r.ID,
		SettlementID:           r.SettlementID,
		RoundNumber:            r.RoundNumber,
		Title:                  r.Title,
		IsCompleted:            r.IsCompleted,
		ExcludedParticipantIDs: r.ExcludedParticipantIDs,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
	for _, e := range r.Entries {
		resp.Entries = append(resp.Entries, &RoundEntryResponse{
			ID:            e.ID,
			ParticipantID: e.ParticipantID,
			Amount:        e.Amount,
			Memo:          e.Memo,
			CreatedAt:     e.CreatedAt,
		})
	}
	return resp
}

// GameRoundsFromDomain converts domain game rounds to responses.
func GameRoundsFromDomain(rounds []*domain.GameRound) []*GameRoundResponse {
	result := make([]*GameRoundResponse, len(rounds))
	for i, r := range rounds {
		result[i] = GameRoundFromDomain(r)
	}
	return result
}

// ListRoundsResponse wraps a round listing.
type ListRoundsResponse struct {
	Rounds []*GameRoundResponse `json:"rounds"`
}

// RoundValidationResponse reports the validation status of a round.
type RoundValidationResponse struct {
	IsValid             bool     `json:"is_valid"`
	TotalAmount         int64    `json:"total_amount"`
	MissingParticipants []string `json:"missing_participants,omitempty"`
	ErrorMessage        string   `json:"error_message,omitempty"`
}

// RoundValidationFromDomain converts a domain round validation.
func RoundValidationFromDomain(v domain.RoundValidation) RoundValidationResponse {
	return RoundValidationResponse{
		IsValid:             v.IsValid,
		TotalAmount:         v.TotalAmount,
		MissingParticipants: v.MissingParticipants,
		ErrorMessage:        v.ErrorMessage,
	}
}

// SaveEntriesResponse is returned when a round's entries are replaced.
type SaveEntriesResponse struct {
	Round      *GameRoundResponse      `json:"round"`
	Validation RoundValidationResponse `json:"validation"`
}

// BalanceResponse represents one participant's travel position.
type BalanceResponse struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	TotalPaid       int64  `json:"total_paid"`
	ShouldPay       int64  `json:"should_pay"`
	Balance         int64  `json:"balance"`
}

// GameStatusResponse represents one participant's cumulative game position.
type GameStatusResponse struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	TotalAmount     int64  `json:"total_amount"`
	RoundCount      int    `json:"round_count"`
	WinCount        int    `json:"win_count"`
	LoseCount       int    `json:"lose_count"`
	MaxWin          int64  `json:"max_win"`
	MaxLoss         int64  `json:"max_loss"`
}

// TransferResponse represents a directed payment instruction.
type TransferResponse struct {
	FromParticipantID   string `json:"from_participant_id"`
	FromParticipantName string `json:"from_participant_name"`
	ToParticipantID     string `json:"to_participant_id"`
	ToParticipantName   string `json:"to_participant_name"`
	Amount              int64  `json:"amount"`
}

// ResultResponse represents a calculation snapshot in API responses.
type ResultResponse struct {
	ID           string                `json:"id"`
	SettlementID string                `json:"settlement_id"`
	TotalAmount  int64                 `json:"total_amount"`
	Balances     []*BalanceResponse    `json:"balances,omitempty"`
	GameStatuses []*GameStatusResponse `json:"game_statuses,omitempty"`
	Transfers    []*TransferResponse   `json:"transfers"`
	CalculatedAt time.Time             `json:"calculated_at"`
}

// ResultFromDomain converts a domain settlement result to a response.
func ResultFromDomain(r *domain.SettlementResult) *ResultResponse {
	resp := &ResultResponse{
		ID:           r.ID,
		SettlementID: r.SettlementID,
		TotalAmount:  r.TotalAmount,
		Transfers:    make([]*TransferResponse, 0, len(r.Transfers)),
		CalculatedAt: r.CalculatedAt,
	}
	for _, b := range r.Balances {
		resp.Balances = append(resp.Balances, &BalanceResponse{
			ParticipantID:   b.ParticipantID,
			ParticipantName: b.ParticipantName,
			TotalPaid:       b.TotalPaid,
			ShouldPay:       b.ShouldPay,
			Balance:         b.Balance,
		})
	}
	for _, s := range r.GameStatuses {
		resp.GameStatuses = append(resp.GameStatuses, gameStatusFromDomain(s))
	}
	for _, t := range r.Transfers {
		resp.Transfers = append(resp.Transfers, &TransferResponse{
			FromParticipantID:   t.FromParticipantID,
			FromParticipantName: t.FromParticipantName,
			ToParticipantID:     t.ToParticipantID,
			ToParticipantName:   t.ToParticipantName,
			Amount:              t.Amount,
		})
	}
	return resp
}

// ResultsFromDomain converts domain results to responses.
func ResultsFromDomain(results []*domain.SettlementResult) []*ResultResponse {
	out := make([]*ResultResponse, len(results))
	for i, r := range results {
		out[i] = ResultFromDomain(r)
	}
	return out
}

// ListResultsResponse wraps a result listing.
type ListResultsResponse struct {
	Results []*ResultResponse `json:"results"`
}

func gameStatusFromDomain(s *domain.ParticipantGameStatus) *GameStatusResponse {
	return &GameStatusResponse{
		ParticipantID:   s.ParticipantID,
		ParticipantName: s.ParticipantName,
		TotalAmount:     s.TotalAmount,
		RoundCount:      s.RoundCount,
		WinCount:        s.WinCount,
		LoseCount:       s.LoseCount,
		MaxWin:          s.MaxWin,
		MaxLoss:         s.MaxLoss,
	}
}

// GameSummaryResponse holds the highlights of a game settlement.
type GameSummaryResponse struct {
	TotalParticipants int                 `json:"total_participants"`
	TotalRounds       int                 `json:"total_rounds"`
	WinnerCount       int                 `json:"winner_count"`
	LoserCount        int                 `json:"loser_count"`
	BiggestWinner     *GameStatusResponse `json:"biggest_winner,omitempty"`
	BiggestLoser      *GameStatusResponse `json:"biggest_loser,omitempty"`
}

// GameStatisticsResponse aggregates per-round figures.
type GameStatisticsResponse struct {
	TotalRounds        int             `json:"total_rounds"`
	TotalAmount        int64           `json:"total_amount"`
	AverageRoundAmount decimal.Decimal `json:"average_round_amount"`
	StartTime          time.Time       `json:"start_time"`
	EndTime            *time.Time      `json:"end_time,omitempty"`
	DurationMinutes    int64           `json:"duration_minutes"`
}

// GameOverviewResponse combines summary and statistics for a game.
type GameOverviewResponse struct {
	Summary    *GameSummaryResponse    `json:"summary"`
	Statistics *GameStatisticsResponse `json:"statistics"`
}

// GameOverviewFromUseCase converts a use case game overview.
func GameOverviewFromUseCase(o *usecase.GameOverview) *GameOverviewResponse {
	resp := &GameOverviewResponse{}
	if o.Summary != nil {
		resp.Summary = &GameSummaryResponse{
			TotalParticipants: o.Summary.TotalParticipants,
			TotalRounds:       o.Summary.TotalRounds,
			WinnerCount:       o.Summary.WinnerCount,
			LoserCount:        o.Summary.LoserCount,
		}
		if o.Summary.BiggestWinner != nil {
			resp.Summary.BiggestWinner = gameStatusFromDomain(o.Summary.BiggestWinner)
		}
		if o.Summary.BiggestLoser != nil {
			resp.Summary.BiggestLoser = gameStatusFromDomain(o.Summary.BiggestLoser)
		}
	}
	if o.Statistics != nil {
		resp.Statistics = &GameStatisticsResponse{
			TotalRounds:        o.Statistics.TotalRounds,
			TotalAmount:        o.Statistics.TotalAmount,
			AverageRoundAmount: o.Statistics.AverageRoundAmount,
			StartTime:          o.Statistics.StartTime,
			EndTime:            o.Statistics.EndTime,
			DurationMinutes:    o.Statistics.DurationMinutes,
		}
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
