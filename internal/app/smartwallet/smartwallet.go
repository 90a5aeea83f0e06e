// Package smartwallet собирает основное HTTP-приложение: хранилище,
// миграции, кэш, очередь сообщений, сервисы и маршруты.
package smartwallet

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/svetlanasieber/smart-wallet/internal/cache"
	"github.com/svetlanasieber/smart-wallet/internal/config"
	"github.com/svetlanasieber/smart-wallet/internal/lib/jwt"
	"github.com/svetlanasieber/smart-wallet/internal/lib/password"
	"github.com/svetlanasieber/smart-wallet/internal/lib/rabbitmq"
	"github.com/svetlanasieber/smart-wallet/internal/migrations"
	notificationservice "github.com/svetlanasieber/smart-wallet/internal/services/notification"
	subscriptionservice "github.com/svetlanasieber/smart-wallet/internal/services/subscription"
	userservice "github.com/svetlanasieber/smart-wallet/internal/services/user"
	walletservice "github.com/svetlanasieber/smart-wallet/internal/services/wallet"
	"github.com/svetlanasieber/smart-wallet/internal/storage/repository"
)

// App — основное приложение кошелькового сервиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: подключает PostgreSQL, применяет миграции,
// инициализирует Redis и RabbitMQ, создает сервисы и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	jwtMaker := jwt.NewMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL)
	hasher := password.NewHasher()

	notificationService := notificationservice.NewNotificationService(db, db, publisher, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, logger)
	walletService := walletservice.NewWalletService(db, cacheRedis, notificationService, logger)
	userService := userservice.NewUserService(db, hasher, subscriptionService,
		walletService, notificationService, jwtMaker, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, userService, walletService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его корректно при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.amqp.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
