// Package models содержит доменные ошибки сервиса. Обе ошибки
// не подлежат повтору и возвращаются вызывающему без частичных
// изменений состояния.
package models

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь с заданным
	// идентификатором или именем не существует.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists возвращается при регистрации, если имя
	// пользователя уже занято.
	ErrUsernameExists = errors.New("username already exists")

	// ErrWalletNotFound возвращается, когда кошелёк с заданным
	// идентификатором не существует.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrWalletInactive возвращается при попытке операции над
	// заблокированным кошельком.
	ErrWalletInactive = errors.New("wallet is inactive")

	// ErrAccountInactive возвращается при входе в заблокированную
	// учётную запись.
	ErrAccountInactive = errors.New("account is inactive")
)
