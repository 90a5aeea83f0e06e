// Package services содержит логику бизнес-уровня для работы с учётными
// записями: регистрацию, переключение роли и статуса, редактирование
// профиля, вход и загрузку данных для аутентификации.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/svetlanasieber/smart-wallet/internal/lib/jwt"
	"github.com/svetlanasieber/smart-wallet/internal/lib/sl"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// FindUserByID возвращает пользователя по UID или models.ErrUserNotFound.
	FindUserByID(ctx context.Context, uid string) (*models.User, error)
	// FindUserByUsername возвращает пользователя по имени или models.ErrUserNotFound.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	// FindAllUsers возвращает всех пользователей.
	FindAllUsers(ctx context.Context) ([]*models.User, error)
	// SaveUser сохраняет пользователя и возвращает сохранённое состояние.
	SaveUser(ctx context.Context, user *models.User) (*models.User, error)
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}

// SubscriptionService выдает новому пользователю подписку по умолчанию.
type SubscriptionService interface {
	CreateDefaultSubscription(ctx context.Context, user *models.User) (*models.Subscription, error)
}

// WalletService создает первый кошелёк нового пользователя.
type WalletService interface {
	InitializeFirstWallet(ctx context.Context, user *models.User) (*models.Wallet, error)
}

// NotificationService сохраняет настройку уведомлений пользователя.
// address == nil означает отсутствие адреса для уведомлений.
type NotificationService interface {
	SaveNotificationPreference(ctx context.Context, userUID string, enabled bool, address *string) error
}

// UserService реализует жизненный цикл учётной записи. Каждая операция —
// одна синхронная последовательность: поиск, изменение, один вызов сохранения.
type UserService struct {
	users         UserRepository
	hasher        PasswordHasher
	subscriptions SubscriptionService
	wallets       WalletService
	notifications NotificationService
	jwtMaker      jwt.Maker
	log           *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(
	users UserRepository,
	hasher PasswordHasher,
	subscriptions SubscriptionService,
	wallets WalletService,
	notifications NotificationService,
	jwtMaker jwt.Maker,
	log *slog.Logger,
) *UserService {
	return &UserService{
		users:         users,
		hasher:        hasher,
		subscriptions: subscriptions,
		wallets:       wallets,
		notifications: notifications,
		jwtMaker:      jwtMaker,
		log:           log,
	}
}

// Register создает нового пользователя с ролью USER и активным статусом,
// выдает ему подписку по умолчанию и первый кошелёк, сохраняет настройку
// уведомлений "не подписан". При занятом имени возвращает
// models.ErrUsernameExists без каких-либо побочных эффектов.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "services.user.Register"

	_, err := s.users.FindUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUsernameExists)
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		UID:          uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		IsActive:     true,
		Country:      req.Country,
		CreatedAt:    time.Now().UTC(),
	}

	saved, err := s.users.SaveUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subscription, err := s.subscriptions.CreateDefaultSubscription(ctx, saved)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	saved.Subscriptions = append(saved.Subscriptions, *subscription)

	wallet, err := s.wallets.InitializeFirstWallet(ctx, saved)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	saved.Wallets = append(saved.Wallets, *wallet)

	// новый пользователь по умолчанию не подписан на уведомления
	if err := s.notifications.SaveNotificationPreference(ctx, saved.UID, false, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", sl.UserUID(saved.UID), slog.String("username", saved.Username))
	return saved, nil
}

// Login проверяет учётные данные и возвращает подписанный JWT и роль.
// Заблокированная учётная запись отклоняется с models.ErrAccountInactive.
func (s *UserService) Login(ctx context.Context, username, rawPassword string) (string, models.UserRole, error) {
	const op = "services.user.Login"

	metadata, err := s.LoadUserByUsername(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.hasher.Compare(metadata.PasswordHash, rawPassword); err != nil {
		return "", "", fmt.Errorf("%s: invalid credentials", op)
	}
	if !metadata.IsActive {
		return "", "", fmt.Errorf("%s: %w", op, models.ErrAccountInactive)
	}

	token, err := s.jwtMaker.GenerateToken(metadata.Username, metadata.Role, metadata.UserUID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return token, metadata.Role, nil
}

// SwitchRole переключает роль пользователя между USER и ADMIN
// и сохраняет пользователя один раз.
func (s *UserService) SwitchRole(ctx context.Context, userUID string) error {
	const op = "services.user.SwitchRole"

	user, err := s.users.FindUserByID(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user.Role = user.Role.Switched()
	if _, err := s.users.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user role switched", sl.UserUID(userUID), slog.String("role", string(user.Role)))
	return nil
}

// SwitchStatus переключает признак активности учётной записи
// и сохраняет пользователя один раз.
func (s *UserService) SwitchStatus(ctx context.Context, userUID string) error {
	const op = "services.user.SwitchStatus"

	user, err := s.users.FindUserByID(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user.IsActive = !user.IsActive
	if _, err := s.users.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user status switched", sl.UserUID(userUID), slog.Bool("is_active", user.IsActive))
	return nil
}

// EditUserDetails безусловно перезаписывает имя, фамилию, почту и аватар
// из запроса, обновляет настройку уведомлений и сохраняет пользователя
// один раз. Уведомления включаются только если почта задана и непуста;
// в остальных случаях адрес не передаётся.
func (s *UserService) EditUserDetails(ctx context.Context, userUID string, req models.UserEditRequest) error {
	const op = "services.user.EditUserDetails"

	user, err := s.users.FindUserByID(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.ProfilePicture = req.ProfilePicture
	if req.Email != nil {
		user.Email = *req.Email
	} else {
		user.Email = ""
	}

	notify := req.Email != nil && *req.Email != ""
	var address *string
	if notify {
		address = req.Email
	}
	if err := s.notifications.SaveNotificationPreference(ctx, userUID, notify, address); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.users.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user details edited", sl.UserUID(userUID))
	return nil
}

// LoadUserByUsername возвращает представление пользователя для
// аутентификации. Имя пользователя берётся из аргумента, полномочие
// ровно одно — производное от роли.
func (s *UserService) LoadUserByUsername(ctx context.Context, username string) (*models.AuthenticationMetadata, error) {
	const op = "services.user.LoadUserByUsername"

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.AuthenticationMetadata{
		UserUID:      user.UID,
		Username:     username,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		Role:         user.Role,
		Authorities:  []string{user.Role.Authority()},
	}, nil
}

// GetUser возвращает пользователя по UID.
func (s *UserService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "services.user.GetUser"

	user, err := s.users.FindUserByID(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GetAllUsers возвращает всех пользователей.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	const op = "services.user.GetAllUsers"

	users, err := s.users.FindAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
