package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParticipantBalance is the derived travel-settlement position of one
// participant. Positive balance means the participant is owed money.
type ParticipantBalance struct {
	ParticipantID   string
	ParticipantName string
	TotalPaid       int64
	ShouldPay       int64
	Balance         int64
}

// ParticipantGameStatus is the derived cumulative game position of one
// participant. MaxLoss is reported as a positive magnitude.
type ParticipantGameStatus struct {
	ParticipantID   string
	ParticipantName string
	TotalAmount     int64
	RoundCount      int
	WinCount        int
	LoseCount       int
	MaxWin          int64
	MaxLoss         int64
}

// Transfer is a directed payment instruction that reduces both parties'
// balances toward zero. Amount is always positive.
type Transfer struct {
	FromParticipantID   string
	FromParticipantName string
	ToParticipantID     string
	ToParticipantName   string
	Amount              int64
}

// GameSummary holds the human-facing highlights of a game settlement.
// BiggestWinner is nil unless the top total is positive; BiggestLoser is
// nil unless the bottom total is negative.
type GameSummary struct {
	TotalParticipants int
	TotalRounds       int
	WinnerCount       int
	LoserCount        int
	BiggestWinner     *ParticipantGameStatus
	BiggestLoser      *ParticipantGameStatus
}

// GameStatistics aggregates presentation-level figures over all rounds.
// AverageRoundAmount is a display value and is never fed back into
// balance arithmetic.
type GameStatistics struct {
	TotalRounds        int
	TotalAmount        int64
	AverageRoundAmount decimal.Decimal
	StartTime          time.Time
	EndTime            *time.Time
	DurationMinutes    int64
}

// SettlementResult is a persisted snapshot of one calculation run. The
// engine itself never timestamps or stores anything; the caller records
// the snapshot with CalculatedAt.
type SettlementResult struct {
	ID           string
	SettlementID string
	TotalAmount  int64
	Balances     []*ParticipantBalance
	GameStatuses []*ParticipantGameStatus
	Transfers    []*Transfer
	CalculatedAt time.Time
	CreatedAt    time.Time
}
