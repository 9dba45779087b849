// Package expensecards предоставляет сборку и маршруты основного приложения.
package expensecards

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	expcreate "github.com/ansokolv/expense-cards/internal/http/handlers/expense/create"
	expfilter "github.com/ansokolv/expense-cards/internal/http/handlers/expense/filter"
	"github.com/ansokolv/expense-cards/internal/http/handlers/expense/health"
	expread "github.com/ansokolv/expense-cards/internal/http/handlers/expense/read"
	expremove "github.com/ansokolv/expense-cards/internal/http/handlers/expense/remove"
	"github.com/ansokolv/expense-cards/internal/http/handlers/expense/topcategory"
	expupdate "github.com/ansokolv/expense-cards/internal/http/handlers/expense/update"
	"github.com/ansokolv/expense-cards/internal/http/handlers/user/login"
	"github.com/ansokolv/expense-cards/internal/http/handlers/user/logout"
	"github.com/ansokolv/expense-cards/internal/http/handlers/user/register"
	userremove "github.com/ansokolv/expense-cards/internal/http/handlers/user/remove"
	"github.com/ansokolv/expense-cards/internal/http/middlewarectx"
	authservice "github.com/ansokolv/expense-cards/internal/services/auth"
	expenseservice "github.com/ansokolv/expense-cards/internal/services/expense"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Статические пути /expenses/filter-cards и
// /expenses/most-expensive-category регистрируются раньше
// параметрического /expenses/{id}, чтобы параметрический маршрут
// не захватывал статический сегмент как значение параметра.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, expenseService *expenseservice.ExpenseService, secureCookies bool) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Get("/healthz", health.New(logger).ServeHTTP)
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService, secureCookies).ServeHTTP)

		// Группа с сессионной авторизацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService, secureCookies).ServeHTTP)
			r.Delete("/delete", userremove.New(logger, authService, secureCookies).ServeHTTP)
		})
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/create-expense-card", expcreate.New(logger, expenseService).ServeHTTP)
		r.Get("/filter-cards", expfilter.New(logger, expenseService).ServeHTTP)
		r.Get("/most-expensive-category", topcategory.New(logger, expenseService).ServeHTTP)
		r.Get("/{id}", expread.New(logger, expenseService).ServeHTTP)
		r.Patch("/{id}", expupdate.New(logger, expenseService).ServeHTTP)
		r.Delete("/{id}", expremove.New(logger, expenseService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
