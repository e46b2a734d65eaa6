package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Settlement metrics
	SettlementsCreated   *prometheus.CounterVec
	SettlementsCompleted prometheus.Counter
	ParticipantsJoined   *prometheus.CounterVec

	// Expense metrics
	ExpensesCreated prometheus.Counter
	ExpenseAmount   prometheus.Histogram
	SplitsFinalized *prometheus.CounterVec

	// Game metrics
	RoundsCreated   prometheus.Counter
	RoundsCompleted prometheus.Counter
	RoundsRejected  *prometheus.CounterVec

	// Calculation metrics
	CalculationsRun     *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	TransfersPlanned    prometheus.Histogram
	ResultCacheHits     *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SettlementsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_settlements_created_total",
				Help: "Total number of settlements created by type",
			},
			[]string{"type"},
		),
		SettlementsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "settleup_settlements_completed_total",
			Help: "Total number of settlements completed",
		}),
		ParticipantsJoined: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_participants_joined_total",
				Help: "Total number of participants added by source",
			},
			[]string{"source"}, // direct, invite
		),

		ExpensesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "settleup_expenses_created_total",
			Help: "Total number of expenses recorded",
		}),
		ExpenseAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "settleup_expense_amount",
			Help:    "Expense amounts in the smallest currency unit",
			Buckets: []float64{1000, 10000, 50000, 100000, 500000, 1000000, 5000000},
		}),
		SplitsFinalized: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_splits_finalized_total",
				Help: "Total number of split finalizations by method",
			},
			[]string{"method"}, // equal, manual
		),

		RoundsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "settleup_rounds_created_total",
			Help: "Total number of game rounds created",
		}),
		RoundsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "settleup_rounds_completed_total",
			Help: "Total number of game rounds completed",
		}),
		RoundsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_rounds_rejected_total",
				Help: "Total number of round completions rejected by reason",
			},
			[]string{"reason"}, // unbalanced, incomplete
		),

		CalculationsRun: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_calculations_total",
				Help: "Total number of settlement calculations by type",
			},
			[]string{"type"},
		),
		CalculationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "settleup_calculation_duration_seconds",
			Help:    "Duration of settlement calculations",
			Buckets: prometheus.DefBuckets,
		}),
		TransfersPlanned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "settleup_transfers_planned",
			Help:    "Number of transfers emitted per calculation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		ResultCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_result_cache_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"outcome"}, // hit, miss
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "settleup_http_request_duration_seconds",
				Help:    "HTTP request duration by method and path",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settleup_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}
