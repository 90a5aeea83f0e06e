package repository

import (
	"context"
	"fmt"

	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// CreateSubscription сохраняет новую подписку пользователя.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.CreateSubscription"

	query := `INSERT INTO subscriptions (uid, owner_uid, type, status, period, price,
			      renewal_allowed, created_at, completed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	if _, err := s.DB.ExecContext(ctx, query,
		sub.UID, sub.OwnerUID, sub.Type, sub.Status, sub.Period, sub.Price,
		sub.RenewalAllowed, sub.CreatedAt, sub.CompletedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSubscriptionsByOwner возвращает подписки пользователя.
func (s *Storage) ListSubscriptionsByOwner(ctx context.Context, ownerUID string) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptionsByOwner"

	query := `SELECT uid, owner_uid, type, status, period, price, renewal_allowed,
			      created_at, completed_at
			  FROM subscriptions
			  WHERE owner_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err = rows.Scan(&sub.UID, &sub.OwnerUID, &sub.Type, &sub.Status, &sub.Period,
			&sub.Price, &sub.RenewalAllowed, &sub.CreatedAt, &sub.CompletedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
