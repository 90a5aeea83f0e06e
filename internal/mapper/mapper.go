// Package mapper преобразует доменные модели в транзитные структуры запросов.
package mapper

import "github.com/svetlanasieber/smart-wallet/internal/models"

// UserToEditRequest строит запрос редактирования профиля из текущего
// состояния пользователя. Копируются ровно четыре поля профиля,
// остальные поля пользователя не затрагиваются.
func UserToEditRequest(u *models.User) models.UserEditRequest {
	email := u.Email

	return models.UserEditRequest{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          &email,
		ProfilePicture: u.ProfilePicture,
	}
}
