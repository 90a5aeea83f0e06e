package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// UpsertNotificationPreference сохраняет настройку уведомлений пользователя,
// перезаписывая существующую.
func (s *Storage) UpsertNotificationPreference(ctx context.Context, pref models.NotificationPreference) error {
	const op = "storage.UpsertNotificationPreference"

	query := `INSERT INTO notification_preferences (user_uid, enabled, contact_email, updated_at)
			  VALUES ($1, $2, $3, NOW())
			  ON CONFLICT (user_uid) DO UPDATE SET
			      enabled = EXCLUDED.enabled,
			      contact_email = EXCLUDED.contact_email,
			      updated_at = NOW();`
	if _, err := s.DB.ExecContext(ctx, query,
		pref.UserUID, pref.Enabled, pref.ContactEmail); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetNotificationPreference возвращает настройку уведомлений пользователя
// или models.ErrUserNotFound, если настройка не сохранялась.
func (s *Storage) GetNotificationPreference(ctx context.Context, userUID string) (*models.NotificationPreference, error) {
	const op = "storage.GetNotificationPreference"

	query := `SELECT user_uid, enabled, contact_email, updated_at
			  FROM notification_preferences
			  WHERE user_uid = $1`
	pref := &models.NotificationPreference{}
	var contactEmail sql.NullString
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&pref.UserUID, &pref.Enabled, &contactEmail, &pref.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if contactEmail.Valid {
		pref.ContactEmail = &contactEmail.String
	}
	return pref, nil
}
