package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kimeasyn/settleup/internal/adapter/http/handler"
	"github.com/kimeasyn/settleup/internal/adapter/http/middleware"
	"github.com/kimeasyn/settleup/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SettlementHandler  *handler.SettlementHandler
	ParticipantHandler *handler.ParticipantHandler
	ExpenseHandler     *handler.ExpenseHandler
	GameRoundHandler   *handler.GameRoundHandler
	CalculationHandler *handler.CalculationHandler
	HealthHandler      *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Logging          *middleware.LoggingMiddleware
	Metrics          *middleware.MetricsMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Settlements
		r.Route("/settlements", func(r chi.Router) {
			r.Post("/", cfg.SettlementHandler.Create)
			r.Get("/", cfg.SettlementHandler.List)
			r.Get("/{id}", cfg.SettlementHandler.Get)
			r.Patch("/{id}", cfg.SettlementHandler.Update)
			r.Delete("/{id}", cfg.SettlementHandler.Delete)
			r.Post("/{id}/complete", cfg.SettlementHandler.Complete)
			r.Post("/{id}/reopen", cfg.SettlementHandler.Reopen)
			r.Post("/{id}/invites", cfg.SettlementHandler.CreateInvite)

			r.Post("/{id}/participants", cfg.ParticipantHandler.Add)
			r.Get("/{id}/participants", cfg.ParticipantHandler.ListBySettlement)

			r.Post("/{id}/expenses", cfg.ExpenseHandler.Create)
			r.Get("/{id}/expenses", cfg.ExpenseHandler.ListBySettlement)

			r.Post("/{id}/rounds", cfg.GameRoundHandler.Create)
			r.Get("/{id}/rounds", cfg.GameRoundHandler.ListBySettlement)

			r.Post("/{id}/calculate", cfg.CalculationHandler.Calculate)
			r.Get("/{id}/result", cfg.CalculationHandler.GetLatest)
			r.Get("/{id}/results", cfg.CalculationHandler.List)
			r.Delete("/{id}/result", cfg.CalculationHandler.Invalidate)
			r.Get("/{id}/game-overview", cfg.CalculationHandler.GameOverview)
		})

		// Join by invite code
		r.Post("/join", cfg.SettlementHandler.Join)

		// Participants
		r.Route("/participants", func(r chi.Router) {
			r.Get("/{id}", cfg.ParticipantHandler.Get)
			r.Patch("/{id}", cfg.ParticipantHandler.Rename)
			r.Post("/{id}/deactivate", cfg.ParticipantHandler.Deactivate)
			r.Post("/{id}/reactivate", cfg.ParticipantHandler.Reactivate)
		})

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/{id}", cfg.ExpenseHandler.Get)
			r.Patch("/{id}", cfg.ExpenseHandler.Update)
			r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			r.Post("/{id}/splits/equal", cfg.ExpenseHandler.SetEqualSplits)
			r.Put("/{id}/splits", cfg.ExpenseHandler.SetManualSplits)
		})

		// Game rounds
		r.Route("/rounds", func(r chi.Router) {
			r.Get("/{id}", cfg.GameRoundHandler.Get)
			r.Patch("/{id}", cfg.GameRoundHandler.Update)
			r.Delete("/{id}", cfg.GameRoundHandler.Delete)
			r.Put("/{id}/entries", cfg.GameRoundHandler.SaveEntries)
			r.Post("/{id}/complete", cfg.GameRoundHandler.Complete)
		})
	})

	return r
}
