package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// CreateWallet сохраняет новый кошелёк пользователя.
func (s *Storage) CreateWallet(ctx context.Context, wallet models.Wallet) error {
	const op = "storage.CreateWallet"

	query := `INSERT INTO wallets (uid, owner_uid, balance, currency, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $6);`
	if _, err := s.DB.ExecContext(ctx, query,
		wallet.UID, wallet.OwnerUID, wallet.Balance, wallet.Currency,
		wallet.Status, wallet.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindWalletByID возвращает кошелёк по его UID
// или models.ErrWalletNotFound, если такого кошелька нет.
func (s *Storage) FindWalletByID(ctx context.Context, uid string) (*models.Wallet, error) {
	const op = "storage.FindWalletByID"

	query := `SELECT uid, owner_uid, balance, currency, status, created_at, updated_at
			  FROM wallets
			  WHERE uid = $1`
	w := &models.Wallet{}
	row := s.DB.QueryRowContext(ctx, query, uid)
	if err := row.Scan(&w.UID, &w.OwnerUID, &w.Balance, &w.Currency, &w.Status,
		&w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrWalletNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

// UpdateWalletBalance записывает новый баланс кошелька.
func (s *Storage) UpdateWalletBalance(ctx context.Context, uid string, balance int64) error {
	const op = "storage.UpdateWalletBalance"

	query := `UPDATE wallets
			  SET balance = $1,
			      updated_at = NOW()
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, balance, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrWalletNotFound)
	}
	return nil
}

// ListWalletsByOwner возвращает кошельки пользователя.
func (s *Storage) ListWalletsByOwner(ctx context.Context, ownerUID string) ([]models.Wallet, error) {
	const op = "storage.ListWalletsByOwner"

	query := `SELECT uid, owner_uid, balance, currency, status, created_at, updated_at
			  FROM wallets
			  WHERE owner_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Wallet
	for rows.Next() {
		var w models.Wallet
		if err = rows.Scan(&w.UID, &w.OwnerUID, &w.Balance, &w.Currency, &w.Status,
			&w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
