// Package password реализует хеширование и проверку паролей на bcrypt.
//
// Hasher пригоден для подстановки в сервисы через узкий интерфейс,
// в тестах заменяется моком.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher хэширует и проверяет пароли с использованием bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создает Hasher со стандартной стоимостью bcrypt.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt-хэш
// для безопасного хранения в базе данных.
func (h *Hasher) Hash(raw string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает bcrypt-хэш с введённым паролем.
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func (h *Hasher) Compare(hash, raw string) error {
	const op = "password.Compare"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
