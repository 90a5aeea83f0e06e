// Package services содержит бизнес-логику настроек уведомлений
// и публикацию событий уведомлений в очередь сообщений.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/svetlanasieber/smart-wallet/internal/lib/rabbitmq"
	"github.com/svetlanasieber/smart-wallet/internal/lib/sl"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// PreferenceRepository определяет методы для работы с настройками
// уведомлений в хранилище.
type PreferenceRepository interface {
	// UpsertNotificationPreference сохраняет настройку, перезаписывая существующую.
	UpsertNotificationPreference(ctx context.Context, pref models.NotificationPreference) error
	// GetNotificationPreference возвращает настройку или models.ErrUserNotFound.
	GetNotificationPreference(ctx context.Context, userUID string) (*models.NotificationPreference, error)
}

// UserFinder возвращает пользователя по UID для заполнения события.
type UserFinder interface {
	FindUserByID(ctx context.Context, uid string) (*models.User, error)
}

// Publisher публикует сообщения в очередь уведомлений.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// NotificationService сохраняет настройки уведомлений и публикует
// события для сервиса отправки писем.
type NotificationService struct {
	prefs     PreferenceRepository
	users     UserFinder
	publisher Publisher
	log       *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(prefs PreferenceRepository, users UserFinder, publisher Publisher, log *slog.Logger) *NotificationService {
	return &NotificationService{
		prefs:     prefs,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// SaveNotificationPreference сохраняет настройку уведомлений пользователя.
// address == nil означает отсутствие адреса.
func (s *NotificationService) SaveNotificationPreference(ctx context.Context, userUID string, enabled bool, address *string) error {
	const op = "services.notification.SaveNotificationPreference"

	pref := models.NotificationPreference{
		UserUID:      userUID,
		Enabled:      enabled,
		ContactEmail: address,
	}
	if err := s.prefs.UpsertNotificationPreference(ctx, pref); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("notification preference saved", sl.UserUID(userUID),
		slog.Bool("enabled", enabled))
	return nil
}

// NotifyWalletTopUp публикует событие пополнения кошелька, если владелец
// подписан на уведомления и задал адрес. Отсутствие настройки или
// выключенные уведомления не являются ошибкой.
func (s *NotificationService) NotifyWalletTopUp(ctx context.Context, wallet *models.Wallet, amount int64) error {
	const op = "services.notification.NotifyWalletTopUp"

	pref, err := s.prefs.GetNotificationPreference(ctx, wallet.OwnerUID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !pref.Enabled || pref.ContactEmail == nil {
		return nil
	}

	user, err := s.users.FindUserByID(ctx, wallet.OwnerUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	event := models.WalletTopUpEvent{
		UserUID:    wallet.OwnerUID,
		Email:      *pref.ContactEmail,
		Username:   user.Username,
		WalletUID:  wallet.UID,
		Amount:     amount,
		NewBalance: wallet.Balance,
		Currency:   wallet.Currency,
	}
	if err := s.publisher.Publish(rabbitmq.NotificationExchange, rabbitmq.WalletTopUpRoutingKey, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("wallet top-up notification published", sl.UserUID(wallet.OwnerUID),
		slog.String("wallet_uid", wallet.UID))
	return nil
}
