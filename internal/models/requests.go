// Package models содержит транзитные структуры запросов, которые не
// сохраняются напрямую: они потребляются один раз для создания или
// изменения пользователя.
package models

// RegisterRequest — входные данные регистрации нового пользователя.
type RegisterRequest struct {
	Username string // Имя пользователя, должно быть уникальным
	Password string // Пароль в открытом виде, хэшируется сервисом
	Country  string // Страна регистрации
}

// UserEditRequest — входные данные редактирования профиля.
//
// Email хранится указателем: nil означает отсутствие значения,
// пустая строка — явно заданный пустой адрес. Оба варианта подавляют
// уведомления, но в профиль записываются без преобразований.
type UserEditRequest struct {
	FirstName      string  // Имя
	LastName       string  // Фамилия
	Email          *string // Электронная почта; nil — не задана
	ProfilePicture string  // Ссылка на аватар
}
