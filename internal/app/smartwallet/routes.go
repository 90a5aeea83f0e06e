// Package smartwallet предоставляет маршруты для основного приложения.
package smartwallet

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/auth/login"
	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/auth/register"
	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/user/edit"
	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/user/list"
	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/user/profile"
	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/user/switchrole"
	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/user/switchstatus"
	"github.com/svetlanasieber/smart-wallet/internal/http/handlers/wallet/topup"
	"github.com/svetlanasieber/smart-wallet/internal/http/middlewarectx"
	"github.com/svetlanasieber/smart-wallet/internal/lib/jwt"
	userservice "github.com/svetlanasieber/smart-wallet/internal/services/user"
	walletservice "github.com/svetlanasieber/smart-wallet/internal/services/wallet"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	userService *userservice.UserService, walletService *walletservice.WalletService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, userService).ServeHTTP)
		r.Post("/login", login.New(logger, userService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/{uid}/profile", profile.New(logger, userService).ServeHTTP)
			r.Put("/users/{uid}/profile", edit.New(logger, userService).ServeHTTP)
			r.Post("/wallets/{uid}/topup", topup.New(logger, walletService).ServeHTTP)

			// Группа администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))
				r.Get("/users", list.New(logger, userService).ServeHTTP)
				r.Put("/users/{uid}/role", switchrole.New(logger, userService).ServeHTTP)
				r.Put("/users/{uid}/status", switchstatus.New(logger, userService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
