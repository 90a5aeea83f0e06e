package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/svetlanasieber/smart-wallet/internal/lib/jwt"
	"github.com/svetlanasieber/smart-wallet/internal/models"
	services "github.com/svetlanasieber/smart-wallet/internal/services/user"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) FindUserByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) FindAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для PasswordHasher
type HasherMock struct {
	mock.Mock
}

func (m *HasherMock) Hash(raw string) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}

func (m *HasherMock) Compare(hash, raw string) error {
	return m.Called(hash, raw).Error(0)
}

// Мок для SubscriptionService
type SubscriptionServiceMock struct {
	mock.Mock
}

func (m *SubscriptionServiceMock) CreateDefaultSubscription(ctx context.Context, user *models.User) (*models.Subscription, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

// Мок для WalletService
type WalletServiceMock struct {
	mock.Mock
}

func (m *WalletServiceMock) InitializeFirstWallet(ctx context.Context, user *models.User) (*models.Wallet, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

// Мок для NotificationService
type NotificationServiceMock struct {
	mock.Mock
}

func (m *NotificationServiceMock) SaveNotificationPreference(ctx context.Context, userUID string, enabled bool, address *string) error {
	return m.Called(ctx, userUID, enabled, address).Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username string, role models.UserRole, userUID string) (string, error) {
	args := m.Called(username, role, userUID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

type mocks struct {
	repo   *UserRepoMock
	hasher *HasherMock
	subs   *SubscriptionServiceMock
	wallet *WalletServiceMock
	notifs *NotificationServiceMock
	jwt    *JwtMakerMock
}

func newService(t *testing.T) (*services.UserService, mocks) {
	t.Helper()
	m := mocks{
		repo:   new(UserRepoMock),
		hasher: new(HasherMock),
		subs:   new(SubscriptionServiceMock),
		wallet: new(WalletServiceMock),
		notifs: new(NotificationServiceMock),
		jwt:    new(JwtMakerMock),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	svc := services.NewUserService(m.repo, m.hasher, m.subs, m.wallet, m.notifs, m.jwt, log)
	return svc, m
}

func TestUserService_SwitchRole(t *testing.T) {
	tests := []struct {
		name        string
		currentRole models.UserRole
		wantRole    models.UserRole
	}{
		{name: "user becomes admin", currentRole: models.RoleUser, wantRole: models.RoleAdmin},
		{name: "admin becomes user", currentRole: models.RoleAdmin, wantRole: models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			user := &models.User{UID: "some-uid", Role: tt.currentRole}
			m.repo.On("FindUserByID", mock.Anything, "some-uid").Return(user, nil).Once()
			m.repo.On("SaveUser", mock.Anything, user).Return(user, nil).Once()

			err := svc.SwitchRole(context.Background(), "some-uid")

			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, user.Role)
			m.repo.AssertNumberOfCalls(t, "SaveUser", 1)
		})
	}
}

func TestUserService_SwitchRole_UserNotFound(t *testing.T) {
	svc, m := newService(t)
	m.repo.On("FindUserByID", mock.Anything, "missing-uid").Return(nil, models.ErrUserNotFound).Once()

	err := svc.SwitchRole(context.Background(), "missing-uid")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	m.repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestUserService_SwitchStatus(t *testing.T) {
	tests := []struct {
		name       string
		isActive   bool
		wantActive bool
	}{
		{name: "active becomes inactive", isActive: true, wantActive: false},
		{name: "inactive becomes active", isActive: false, wantActive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			user := &models.User{UID: "some-uid", IsActive: tt.isActive}
			m.repo.On("FindUserByID", mock.Anything, "some-uid").Return(user, nil).Once()
			m.repo.On("SaveUser", mock.Anything, user).Return(user, nil).Once()

			err := svc.SwitchStatus(context.Background(), "some-uid")

			require.NoError(t, err)
			assert.Equal(t, tt.wantActive, user.IsActive)
			m.repo.AssertNumberOfCalls(t, "SaveUser", 1)
		})
	}
}

func TestUserService_SwitchStatus_UserNotFound(t *testing.T) {
	svc, m := newService(t)
	m.repo.On("FindUserByID", mock.Anything, "missing-uid").Return(nil, models.ErrUserNotFound).Once()

	err := svc.SwitchStatus(context.Background(), "missing-uid")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	m.repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestUserService_Register_UsernameExists(t *testing.T) {
	svc, m := newService(t)
	req := models.RegisterRequest{
		Username: "svetlana",
		Password: "testtest123",
		Country:  "SWITZERLAND",
	}
	m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(&models.User{}, nil).Once()

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, models.ErrUsernameExists)
	// на пути ошибки ни одного побочного эффекта
	m.repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	m.subs.AssertNotCalled(t, "CreateDefaultSubscription", mock.Anything, mock.Anything)
	m.wallet.AssertNotCalled(t, "InitializeFirstWallet", mock.Anything, mock.Anything)
	m.notifs.AssertNotCalled(t, "SaveNotificationPreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Register_HappyPath(t *testing.T) {
	svc, m := newService(t)
	req := models.RegisterRequest{
		Username: "svetlana",
		Password: "testtest123",
		Country:  "SWITZERLAND",
	}
	saved := &models.User{UID: "new-uid", Username: "svetlana"}

	m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(nil, models.ErrUserNotFound).Once()
	m.hasher.On("Hash", "testtest123").Return("hashed-password", nil).Once()
	m.repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "svetlana" &&
			u.PasswordHash == "hashed-password" &&
			u.Role == models.RoleUser &&
			u.IsActive &&
			u.Country == "SWITZERLAND"
	})).Return(saved, nil).Once()
	m.subs.On("CreateDefaultSubscription", mock.Anything, saved).Return(&models.Subscription{}, nil).Once()
	m.wallet.On("InitializeFirstWallet", mock.Anything, saved).Return(&models.Wallet{}, nil).Once()
	m.notifs.On("SaveNotificationPreference", mock.Anything, "new-uid", false, (*string)(nil)).Return(nil).Once()

	registered, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, registered.Subscriptions, 1)
	assert.Len(t, registered.Wallets, 1)
	m.repo.AssertNumberOfCalls(t, "SaveUser", 1)
	m.notifs.AssertNumberOfCalls(t, "SaveNotificationPreference", 1)
}

func TestUserService_Register_RepositoryError(t *testing.T) {
	svc, m := newService(t)
	req := models.RegisterRequest{Username: "svetlana", Password: "testtest123"}

	m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(nil, errors.New("db error")).Once()

	_, err := svc.Register(context.Background(), req)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrUsernameExists)
}

func TestUserService_LoadUserByUsername_NotFound(t *testing.T) {
	svc, m := newService(t)
	m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(nil, models.ErrUserNotFound).Once()

	_, err := svc.LoadUserByUsername(context.Background(), "svetlana")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserService_LoadUserByUsername_ReturnsAuthenticationMetadata(t *testing.T) {
	svc, m := newService(t)
	user := &models.User{
		UID:          "some-uid",
		Username:     "svetlana",
		PasswordHash: "hashed-password",
		IsActive:     true,
		Role:         models.RoleAdmin,
	}
	m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(user, nil).Once()

	metadata, err := svc.LoadUserByUsername(context.Background(), "svetlana")

	require.NoError(t, err)
	assert.Equal(t, "some-uid", metadata.UserUID)
	assert.Equal(t, "svetlana", metadata.Username)
	assert.Equal(t, "hashed-password", metadata.PasswordHash)
	assert.True(t, metadata.IsActive)
	assert.Equal(t, models.RoleAdmin, metadata.Role)
	require.Len(t, metadata.Authorities, 1)
	assert.Equal(t, "ROLE_ADMIN", metadata.Authorities[0])
}

func TestUserService_EditUserDetails_UserNotFound(t *testing.T) {
	svc, m := newService(t)
	m.repo.On("FindUserByID", mock.Anything, "missing-uid").Return(nil, models.ErrUserNotFound).Once()

	err := svc.EditUserDetails(context.Background(), "missing-uid", models.UserEditRequest{})

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	m.notifs.AssertNotCalled(t, "SaveNotificationPreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestUserService_EditUserDetails_WithActualEmail(t *testing.T) {
	svc, m := newService(t)
	email := "sieber.test@gmail.com"
	req := models.UserEditRequest{
		FirstName:      "Svetlana",
		LastName:       "Sieber",
		Email:          &email,
		ProfilePicture: "www.image.com",
	}
	user := &models.User{UID: "some-uid"}
	m.repo.On("FindUserByID", mock.Anything, "some-uid").Return(user, nil).Once()
	m.notifs.On("SaveNotificationPreference", mock.Anything, "some-uid", true, &email).Return(nil).Once()
	m.repo.On("SaveUser", mock.Anything, user).Return(user, nil).Once()

	err := svc.EditUserDetails(context.Background(), "some-uid", req)

	require.NoError(t, err)
	assert.Equal(t, "Svetlana", user.FirstName)
	assert.Equal(t, "Sieber", user.LastName)
	assert.Equal(t, "sieber.test@gmail.com", user.Email)
	assert.Equal(t, "www.image.com", user.ProfilePicture)
	m.notifs.AssertNumberOfCalls(t, "SaveNotificationPreference", 1)
	m.repo.AssertNumberOfCalls(t, "SaveUser", 1)
}

func TestUserService_EditUserDetails_WithEmptyEmail(t *testing.T) {
	svc, m := newService(t)
	empty := ""
	req := models.UserEditRequest{
		FirstName:      "Svetlana",
		LastName:       "Sieber",
		Email:          &empty,
		ProfilePicture: "www.image.com",
	}
	user := &models.User{UID: "some-uid", Email: "old@example.com"}
	m.repo.On("FindUserByID", mock.Anything, "some-uid").Return(user, nil).Once()
	m.notifs.On("SaveNotificationPreference", mock.Anything, "some-uid", false, (*string)(nil)).Return(nil).Once()
	m.repo.On("SaveUser", mock.Anything, user).Return(user, nil).Once()

	err := svc.EditUserDetails(context.Background(), "some-uid", req)

	require.NoError(t, err)
	assert.Equal(t, "Svetlana", user.FirstName)
	assert.Equal(t, "Sieber", user.LastName)
	// пустая строка перезаписывает почту без преобразований
	assert.Equal(t, "", user.Email)
	assert.Equal(t, "www.image.com", user.ProfilePicture)
	m.notifs.AssertNumberOfCalls(t, "SaveNotificationPreference", 1)
	m.repo.AssertNumberOfCalls(t, "SaveUser", 1)
}

func TestUserService_EditUserDetails_WithAbsentEmail(t *testing.T) {
	svc, m := newService(t)
	req := models.UserEditRequest{
		FirstName:      "Svetlana",
		LastName:       "Sieber",
		ProfilePicture: "www.image.com",
	}
	user := &models.User{UID: "some-uid", Email: "old@example.com"}
	m.repo.On("FindUserByID", mock.Anything, "some-uid").Return(user, nil).Once()
	m.notifs.On("SaveNotificationPreference", mock.Anything, "some-uid", false, (*string)(nil)).Return(nil).Once()
	m.repo.On("SaveUser", mock.Anything, user).Return(user, nil).Once()

	err := svc.EditUserDetails(context.Background(), "some-uid", req)

	require.NoError(t, err)
	assert.Equal(t, "", user.Email)
}

func TestUserService_GetAllUsers(t *testing.T) {
	svc, m := newService(t)
	m.repo.On("FindAllUsers", mock.Anything).Return([]*models.User{{}, {}}, nil).Once()

	users, err := svc.GetAllUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_Login(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(m mocks)
		wantToken  string
		wantRole   models.UserRole
		wantErr    error
	}{
		{
			name: "successful login",
			setupMocks: func(m mocks) {
				user := &models.User{
					UID:          "some-uid",
					Username:     "svetlana",
					PasswordHash: "hashed-password",
					IsActive:     true,
					Role:         models.RoleUser,
				}
				m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(user, nil).Once()
				m.hasher.On("Compare", "hashed-password", "testtest123").Return(nil).Once()
				m.jwt.On("GenerateToken", "svetlana", models.RoleUser, "some-uid").Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
			wantRole:  models.RoleUser,
		},
		{
			name: "wrong password",
			setupMocks: func(m mocks) {
				user := &models.User{UID: "some-uid", PasswordHash: "hashed-password", IsActive: true}
				m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(user, nil).Once()
				m.hasher.On("Compare", "hashed-password", "testtest123").Return(errors.New("mismatch")).Once()
			},
			wantErr: errors.New("invalid credentials"),
		},
		{
			name: "inactive account",
			setupMocks: func(m mocks) {
				user := &models.User{UID: "some-uid", PasswordHash: "hashed-password", IsActive: false}
				m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(user, nil).Once()
				m.hasher.On("Compare", "hashed-password", "testtest123").Return(nil).Once()
			},
			wantErr: models.ErrAccountInactive,
		},
		{
			name: "unknown username",
			setupMocks: func(m mocks) {
				m.repo.On("FindUserByUsername", mock.Anything, "svetlana").Return(nil, models.ErrUserNotFound).Once()
			},
			wantErr: models.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMocks(m)

			token, role, err := svc.Login(context.Background(), "svetlana", "testtest123")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}
