// Package models содержит доменную модель кошелька пользователя.
package models

import "time"

// WalletStatus — состояние кошелька.
type WalletStatus string

const (
	// WalletStatusActive — кошелёк доступен для операций.
	WalletStatusActive WalletStatus = "ACTIVE"
	// WalletStatusInactive — кошелёк заблокирован.
	WalletStatusInactive WalletStatus = "INACTIVE"
)

// Wallet представляет кошелёк, принадлежащий пользователю.
// Баланс хранится в минорных единицах валюты (центы, копейки).
type Wallet struct {
	UID       string       // Уникальный идентификатор кошелька
	OwnerUID  string       // Идентификатор пользователя-владельца
	Balance   int64        // Баланс в минорных единицах
	Currency  string       // Код валюты ISO 4217
	Status    WalletStatus // Состояние кошелька
	CreatedAt time.Time    // Дата создания
	UpdatedAt time.Time    // Дата последней операции
}
