// Package models содержит доменную модель подписки пользователя.
package models

import "time"

// SubscriptionType — тип тарифа подписки.
type SubscriptionType string

// SubscriptionStatus — состояние подписки.
type SubscriptionStatus string

// SubscriptionPeriod — период действия подписки.
type SubscriptionPeriod string

const (
	// SubscriptionTypeDefault — бесплатный тариф, выдаётся при регистрации.
	SubscriptionTypeDefault SubscriptionType = "DEFAULT"
	// SubscriptionTypePremium — платный тариф.
	SubscriptionTypePremium SubscriptionType = "PREMIUM"

	// SubscriptionStatusActive — действующая подписка.
	SubscriptionStatusActive SubscriptionStatus = "ACTIVE"
	// SubscriptionStatusCompleted — завершённая подписка.
	SubscriptionStatusCompleted SubscriptionStatus = "COMPLETED"

	// SubscriptionPeriodMonthly — месячный период.
	SubscriptionPeriodMonthly SubscriptionPeriod = "MONTHLY"
)

// Subscription представляет подписку, принадлежащую пользователю.
type Subscription struct {
	UID            string             // Уникальный идентификатор подписки
	OwnerUID       string             // Идентификатор пользователя-владельца
	Type           SubscriptionType   // Тариф
	Status         SubscriptionStatus // Состояние
	Period         SubscriptionPeriod // Период действия
	Price          int64              // Цена за период в минорных единицах валюты
	RenewalAllowed bool               // Разрешено ли продление
	CreatedAt      time.Time          // Дата начала
	CompletedAt    time.Time          // Дата окончания периода
}
