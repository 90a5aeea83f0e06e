package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/svetlanasieber/smart-wallet/internal/models"
)

const userColumns = `uid, username, first_name, last_name, email, password_hash,
			      profile_picture, role, is_active, country, created_at, updated_at`

// FindUserByID возвращает пользователя по его UID
// или models.ErrUserNotFound, если такого пользователя нет.
func (s *Storage) FindUserByID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.FindUserByID"

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(ctx, op, query, uid)
}

// FindUserByUsername возвращает пользователя по имени
// или models.ErrUserNotFound, если такого пользователя нет.
func (s *Storage) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.FindUserByUsername"

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE username = $1`
	return s.scanUser(ctx, op, query, username)
}

func (s *Storage) scanUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&u.UID, &u.Username, &u.FirstName, &u.LastName, &u.Email,
		&u.PasswordHash, &u.ProfilePicture, &u.Role, &u.IsActive, &u.Country,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindAllUsers возвращает всех пользователей без принадлежащих им коллекций.
func (s *Storage) FindAllUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.FindAllUsers"

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.UID, &u.Username, &u.FirstName, &u.LastName, &u.Email,
			&u.PasswordHash, &u.ProfilePicture, &u.Role, &u.IsActive, &u.Country,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SaveUser сохраняет пользователя: вставляет новую запись либо обновляет
// существующую по UID. Возвращает сохранённое состояние.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "storage.SaveUser"

	query := `INSERT INTO users (uid, username, first_name, last_name, email, password_hash,
			      profile_picture, role, is_active, country, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
			  ON CONFLICT (uid) DO UPDATE SET
			      username = EXCLUDED.username,
			      first_name = EXCLUDED.first_name,
			      last_name = EXCLUDED.last_name,
			      email = EXCLUDED.email,
			      password_hash = EXCLUDED.password_hash,
			      profile_picture = EXCLUDED.profile_picture,
			      role = EXCLUDED.role,
			      is_active = EXCLUDED.is_active,
			      country = EXCLUDED.country,
			      updated_at = NOW()
			  RETURNING updated_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Username, user.FirstName, user.LastName, user.Email,
		user.PasswordHash, user.ProfilePicture, user.Role, user.IsActive,
		user.Country, user.CreatedAt).Scan(&user.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
