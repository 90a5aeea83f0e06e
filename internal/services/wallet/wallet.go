// Package services содержит бизнес-логику работы с кошельками,
// включая кеширование и уведомления о пополнении.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/svetlanasieber/smart-wallet/internal/lib/sl"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// InitialBalance — стартовый баланс первого кошелька в минорных единицах (EUR 20.00).
const InitialBalance int64 = 2000

// DefaultCurrency — валюта первого кошелька.
const DefaultCurrency = "EUR"

const cacheTTL = time.Hour

// WalletRepository определяет методы для работы с кошельками в хранилище.
type WalletRepository interface {
	// CreateWallet сохраняет новый кошелёк.
	CreateWallet(ctx context.Context, wallet models.Wallet) error
	// FindWalletByID возвращает кошелёк по UID или models.ErrWalletNotFound.
	FindWalletByID(ctx context.Context, uid string) (*models.Wallet, error)
	// UpdateWalletBalance записывает новый баланс кошелька.
	UpdateWalletBalance(ctx context.Context, uid string, balance int64) error
	// ListWalletsByOwner возвращает кошельки пользователя.
	ListWalletsByOwner(ctx context.Context, ownerUID string) ([]models.Wallet, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// TopUpNotifier отправляет пользователю уведомление о пополнении кошелька.
type TopUpNotifier interface {
	NotifyWalletTopUp(ctx context.Context, wallet *models.Wallet, amount int64) error
}

// WalletService реализует бизнес-логику кошельков с кешированием чтений.
type WalletService struct {
	repo     WalletRepository
	cache    Cache
	notifier TopUpNotifier
	log      *slog.Logger
}

// NewWalletService создает новый экземпляр WalletService.
func NewWalletService(repo WalletRepository, cache Cache, notifier TopUpNotifier, log *slog.Logger) *WalletService {
	return &WalletService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

func walletCacheKey(uid string) string {
	return "wallet:" + uid
}

// InitializeFirstWallet создает первый кошелёк нового пользователя
// со стартовым балансом EUR 20.00 и сохраняет его.
func (s *WalletService) InitializeFirstWallet(ctx context.Context, user *models.User) (*models.Wallet, error) {
	const op = "services.wallet.InitializeFirstWallet"

	wallet := models.Wallet{
		UID:       uuid.New().String(),
		OwnerUID:  user.UID,
		Balance:   InitialBalance,
		Currency:  DefaultCurrency,
		Status:    models.WalletStatusActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(walletCacheKey(wallet.UID), wallet, cacheTTL); err != nil {
		s.log.Warn("failed to cache wallet", sl.Err(err))
	}

	s.log.Info("first wallet initialized", sl.UserUID(user.UID),
		slog.String("wallet_uid", wallet.UID))
	return &wallet, nil
}

// GetWallet возвращает кошелёк по UID, сначала проверяя кеш.
func (s *WalletService) GetWallet(ctx context.Context, walletUID string) (*models.Wallet, error) {
	const op = "services.wallet.GetWallet"

	var cached models.Wallet
	found, err := s.cache.Get(walletCacheKey(walletUID), &cached)
	if err != nil {
		s.log.Warn("failed to read wallet cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	wallet, err := s.repo.FindWalletByID(ctx, walletUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(walletCacheKey(walletUID), *wallet, cacheTTL); err != nil {
		s.log.Warn("failed to cache wallet", sl.Err(err))
	}
	return wallet, nil
}

// TopUp увеличивает баланс активного кошелька на amount, сохраняет его
// один раз и отправляет уведомление о пополнении.
func (s *WalletService) TopUp(ctx context.Context, walletUID string, amount int64) (*models.Wallet, error) {
	const op = "services.wallet.TopUp"

	if amount <= 0 {
		return nil, fmt.Errorf("%s: amount must be positive", op)
	}

	wallet, err := s.repo.FindWalletByID(ctx, walletUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if wallet.Status != models.WalletStatusActive {
		return nil, fmt.Errorf("%s: %w", op, models.ErrWalletInactive)
	}

	wallet.Balance += amount
	if err := s.repo.UpdateWalletBalance(ctx, walletUID, wallet.Balance); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(walletCacheKey(walletUID), *wallet, cacheTTL); err != nil {
		s.log.Warn("failed to cache wallet", sl.Err(err))
	}

	// неуспех уведомления не откатывает пополнение
	if err := s.notifier.NotifyWalletTopUp(ctx, wallet, amount); err != nil {
		s.log.Error("failed to notify wallet top-up", sl.Err(err),
			slog.String("wallet_uid", walletUID))
	}

	s.log.Info("wallet topped up", slog.String("wallet_uid", walletUID),
		slog.Int64("amount", amount), slog.Int64("balance", wallet.Balance))
	return wallet, nil
}

// ListByOwner возвращает кошельки пользователя.
func (s *WalletService) ListByOwner(ctx context.Context, ownerUID string) ([]models.Wallet, error) {
	const op = "services.wallet.ListByOwner"

	wallets, err := s.repo.ListWalletsByOwner(ctx, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return wallets, nil
}
