package rest

import (
	"database/sql"
	"log/slog"

	"github.com/aditmayuda/expense-tracker/internal/auth"
	"github.com/aditmayuda/expense-tracker/internal/category"
	"github.com/aditmayuda/expense-tracker/internal/expense"
	"github.com/aditmayuda/expense-tracker/internal/report"
	"github.com/aditmayuda/expense-tracker/internal/transport/middleware"
	"github.com/aditmayuda/expense-tracker/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	categoryHandler *category.Handler,
	expenseHandler *expense.Handler,
	reportHandler *report.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public: registration and session management.
		r.Post("/users", userHandler.Register)
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
		})

		// Everything else is scoped to the authenticated user.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/users/me", func(ur chi.Router) {
				ur.Get("/", userHandler.GetCurrentUser)
				ur.Put("/", userHandler.UpdateCurrentUser)
				ur.Delete("/", userHandler.DeleteCurrentUser)
			})

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", categoryHandler.ListCategories)
				cr.Post("/", categoryHandler.CreateCategory)
				cr.Get("/{id}", categoryHandler.GetCategory)
				cr.Put("/{id}", categoryHandler.UpdateCategory)
				cr.Delete("/{id}", categoryHandler.DeleteCategory)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Get("/", expenseHandler.ListExpenses)
				er.Post("/", expenseHandler.CreateExpense)
				er.Get("/{id}", expenseHandler.GetExpense)
				er.Put("/{id}", expenseHandler.UpdateExpense)
				er.Delete("/{id}", expenseHandler.DeleteExpense)
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/summary", reportHandler.CategorySummary)
				rr.Get("/monthly", reportHandler.MonthlyTotals)
				rr.Get("/total", reportHandler.Total)
			})
		})
	})
}
