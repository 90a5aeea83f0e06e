// Package models содержит доменную модель пользователя кошелькового сервиса:
// учётную запись с ролью и статусом активности, принадлежащие ей подписки
// и кошельки, а также представление для аутентификации.
package models

import "time"

// UserRole — закрытый тип роли пользователя. Допустимы ровно два значения:
// RoleUser и RoleAdmin.
type UserRole string

const (
	// RoleUser — обычный пользователь, роль по умолчанию при регистрации.
	RoleUser UserRole = "USER"
	// RoleAdmin — администратор.
	RoleAdmin UserRole = "ADMIN"
)

// Switched возвращает противоположную роль. Функция тотальна на двух
// допустимых значениях: r.Switched().Switched() == r.
func (r UserRole) Switched() UserRole {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// Authority возвращает строку полномочия в формате "ROLE_<ROLE>".
func (r UserRole) Authority() string {
	return "ROLE_" + string(r)
}

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	UID            string         // Уникальный идентификатор пользователя
	Username       string         // Имя пользователя (уникальное)
	FirstName      string         // Имя
	LastName       string         // Фамилия
	Email          string         // Электронная почта, может быть пустой
	PasswordHash   string         // Хэш пароля пользователя
	ProfilePicture string         // Ссылка на аватар
	Role           UserRole       // Роль пользователя
	IsActive       bool           // Статус активности учётной записи
	Country        string         // Страна регистрации
	CreatedAt      time.Time      // Дата создания
	UpdatedAt      time.Time      // Дата последнего изменения
	Subscriptions  []Subscription // Подписки, принадлежащие пользователю
	Wallets        []Wallet       // Кошельки, принадлежащие пользователю
}

// AuthenticationMetadata — представление пользователя для аутентификации.
// Формируется сервисом по имени пользователя и содержит ровно одно
// полномочие, производное от роли.
type AuthenticationMetadata struct {
	UserUID      string   // Идентификатор пользователя
	Username     string   // Имя пользователя, как его запросил вызывающий
	PasswordHash string   // Хэш пароля для проверки учётных данных
	IsActive     bool     // Признак активности учётной записи
	Role         UserRole // Роль пользователя
	Authorities  []string // Полномочия, всегда ровно одно: "ROLE_<ROLE>"
}
