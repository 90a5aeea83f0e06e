package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/svetlanasieber/smart-wallet/internal/lib/rabbitmq"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

type PrefsRepoMock struct{ mock.Mock }

func (m *PrefsRepoMock) UpsertNotificationPreference(ctx context.Context, pref models.NotificationPreference) error {
	return m.Called(ctx, pref).Error(0)
}

func (m *PrefsRepoMock) GetNotificationPreference(ctx context.Context, userUID string) (*models.NotificationPreference, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationPreference), args.Error(1)
}

type UserFinderMock struct{ mock.Mock }

func (m *UserFinderMock) FindUserByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(exchange, routingKey string, message any) error {
	return m.Called(exchange, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService() (*NotificationService, *PrefsRepoMock, *UserFinderMock, *PublisherMock) {
	prefs := new(PrefsRepoMock)
	users := new(UserFinderMock)
	publisher := new(PublisherMock)
	return NewNotificationService(prefs, users, publisher, newNoopLogger()), prefs, users, publisher
}

func TestNotificationService_SaveNotificationPreference(t *testing.T) {
	email := "sieber.test@gmail.com"
	tests := []struct {
		name    string
		enabled bool
		address *string
	}{
		{name: "enabled with address", enabled: true, address: &email},
		{name: "disabled without address", enabled: false, address: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, prefs, _, _ := newService()
			prefs.On("UpsertNotificationPreference", mock.Anything, models.NotificationPreference{
				UserUID:      "some-uid",
				Enabled:      tt.enabled,
				ContactEmail: tt.address,
			}).Return(nil).Once()

			err := svc.SaveNotificationPreference(context.Background(), "some-uid", tt.enabled, tt.address)

			require.NoError(t, err)
			prefs.AssertExpectations(t)
		})
	}
}

func TestNotificationService_NotifyWalletTopUp_Published(t *testing.T) {
	svc, prefs, users, publisher := newService()
	email := "sieber.test@gmail.com"
	wallet := &models.Wallet{UID: "wallet-uid", OwnerUID: "owner-uid", Balance: 2500, Currency: "EUR"}

	prefs.On("GetNotificationPreference", mock.Anything, "owner-uid").
		Return(&models.NotificationPreference{UserUID: "owner-uid", Enabled: true, ContactEmail: &email}, nil).Once()
	users.On("FindUserByID", mock.Anything, "owner-uid").
		Return(&models.User{UID: "owner-uid", Username: "svetlana"}, nil).Once()
	publisher.On("Publish", rabbitmq.NotificationExchange, rabbitmq.WalletTopUpRoutingKey,
		mock.MatchedBy(func(e models.WalletTopUpEvent) bool {
			return e.Email == email &&
				e.Username == "svetlana" &&
				e.WalletUID == "wallet-uid" &&
				e.Amount == 500 &&
				e.NewBalance == 2500
		})).Return(nil).Once()

	err := svc.NotifyWalletTopUp(context.Background(), wallet, 500)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestNotificationService_NotifyWalletTopUp_Skipped(t *testing.T) {
	email := "sieber.test@gmail.com"
	tests := []struct {
		name string
		pref *models.NotificationPreference
		err  error
	}{
		{
			name: "notifications disabled",
			pref: &models.NotificationPreference{UserUID: "owner-uid", Enabled: false, ContactEmail: &email},
		},
		{
			name: "no contact email",
			pref: &models.NotificationPreference{UserUID: "owner-uid", Enabled: true},
		},
		{
			name: "preference never saved",
			err:  models.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, prefs, _, publisher := newService()
			prefs.On("GetNotificationPreference", mock.Anything, "owner-uid").Return(tt.pref, tt.err).Once()

			err := svc.NotifyWalletTopUp(context.Background(),
				&models.Wallet{UID: "wallet-uid", OwnerUID: "owner-uid"}, 500)

			require.NoError(t, err)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestNotificationService_NotifyWalletTopUp_PublishError(t *testing.T) {
	svc, prefs, users, publisher := newService()
	email := "sieber.test@gmail.com"

	prefs.On("GetNotificationPreference", mock.Anything, "owner-uid").
		Return(&models.NotificationPreference{UserUID: "owner-uid", Enabled: true, ContactEmail: &email}, nil).Once()
	users.On("FindUserByID", mock.Anything, "owner-uid").
		Return(&models.User{UID: "owner-uid", Username: "svetlana"}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()

	err := svc.NotifyWalletTopUp(context.Background(),
		&models.Wallet{UID: "wallet-uid", OwnerUID: "owner-uid"}, 500)

	assert.Error(t, err)
}
