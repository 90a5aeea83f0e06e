// Package models содержит модель настроек уведомлений и событие
// пополнения кошелька, передаваемое через очередь сообщений.
package models

import "time"

// NotificationPreference — настройка уведомлений пользователя:
// включены ли они и на какой адрес отправлять.
type NotificationPreference struct {
	UserUID      string    // Идентификатор пользователя
	Enabled      bool      // Подписан ли пользователь на уведомления
	ContactEmail *string   // Адрес для уведомлений; nil — адрес не задан
	UpdatedAt    time.Time // Дата последнего изменения настройки
}

// WalletTopUpEvent — сообщение о пополнении кошелька для отправки
// письма пользователю. Публикуется в RabbitMQ и потребляется
// сервисом отправки уведомлений.
type WalletTopUpEvent struct {
	UserUID    string `json:"user_uid"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	WalletUID  string `json:"wallet_uid"`
	Amount     int64  `json:"amount"`
	NewBalance int64  `json:"new_balance"`
	Currency   string `json:"currency"`
}
