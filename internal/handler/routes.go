package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fintrack/fintrack-go/internal/middleware"
	"github.com/fintrack/fintrack-go/internal/repository"
	"github.com/fintrack/fintrack-go/internal/service"
)

// Options configures the router.
type Options struct {
	JWTSecret      string
	JWTExpiry      time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	// Stop ends the rate limiter's janitor. Nil keeps it running.
	Stop <-chan struct{}
}

// NewRouter wires repositories, services and handlers on top of db and
// returns the HTTP API.
func NewRouter(db *sql.DB, opts Options) http.Handler {
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, opts.JWTSecret, opts.JWTExpiry))
	txHandler := NewTransactionHandler(service.NewTransactionService(txRepo))
	recurringHandler := NewRecurringHandler(service.NewRecurringService(repository.NewRecurringRepository(db)))
	goalHandler := NewGoalHandler(service.NewGoalService(repository.NewGoalRepository(db)))
	summaryHandler := NewSummaryHandler(service.NewSummaryService(txRepo))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Personal Finance Tracker API",
			"status":  "running",
		})
	})
	r.Get("/health", healthHandler(db))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst, opts.Stop))
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(opts.JWTSecret))

		r.Get("/auth/me", authHandler.HandleMe)
		r.Put("/auth/profile", authHandler.HandleUpdateProfile)
		r.Put("/auth/password", authHandler.HandleChangePassword)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", txHandler.HandleList)
			r.Post("/", txHandler.HandleCreate)
			r.Get("/{id}", txHandler.HandleGet)
			r.Put("/{id}", txHandler.HandleUpdate)
			r.Delete("/{id}", txHandler.HandleDelete)
		})

		r.Route("/recurring-transactions", func(r chi.Router) {
			r.Get("/", recurringHandler.HandleList)
			r.Post("/", recurringHandler.HandleCreate)
			r.Get("/{id}", recurringHandler.HandleGet)
			r.Put("/{id}", recurringHandler.HandleUpdate)
			r.Delete("/{id}", recurringHandler.HandleDelete)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", goalHandler.HandleList)
			r.Post("/", goalHandler.HandleCreate)
			r.Get("/{id}", goalHandler.HandleGet)
			r.Put("/{id}", goalHandler.HandleUpdate)
			r.Delete("/{id}", goalHandler.HandleDelete)
		})

		r.Get("/summary", summaryHandler.HandleSummary)
	})

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse("database unavailable"))
			return
		}
		writeJSON(w, http.StatusOK, "ok")
	}
}
