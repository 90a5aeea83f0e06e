// Package services содержит бизнес-логику управления подписками пользователей.
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

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription сохраняет новую подписку.
	CreateSubscription(ctx context.Context, sub models.Subscription) error
	// ListSubscriptionsByOwner возвращает подписки пользователя.
	ListSubscriptionsByOwner(ctx context.Context, ownerUID string) ([]models.Subscription, error)
}

// SubscriptionService реализует выдачу и чтение подписок.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// CreateDefaultSubscription создает бесплатную месячную подписку
// для нового пользователя и сохраняет её.
func (s *SubscriptionService) CreateDefaultSubscription(ctx context.Context, user *models.User) (*models.Subscription, error) {
	const op = "services.subscription.CreateDefaultSubscription"

	now := time.Now().UTC()
	subscription := models.Subscription{
		UID:            uuid.New().String(),
		OwnerUID:       user.UID,
		Type:           models.SubscriptionTypeDefault,
		Status:         models.SubscriptionStatusActive,
		Period:         models.SubscriptionPeriodMonthly,
		Price:          0,
		RenewalAllowed: true,
		CreatedAt:      now,
		CompletedAt:    now.AddDate(0, 1, 0),
	}

	if err := s.repo.CreateSubscription(ctx, subscription); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("default subscription created", sl.UserUID(user.UID),
		slog.String("subscription_uid", subscription.UID))
	return &subscription, nil
}

// ListByOwner возвращает подписки пользователя.
func (s *SubscriptionService) ListByOwner(ctx context.Context, ownerUID string) ([]models.Subscription, error) {
	const op = "services.subscription.ListByOwner"

	subs, err := s.repo.ListSubscriptionsByOwner(ctx, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}
