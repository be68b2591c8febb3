// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях админ-панели.
// Эти ошибки позволяют обработчикам различать типы проблем
// и возвращать клиенту правильный HTTP-статус.
package common

import "errors"

// Ошибки аутентификации
var (
	// ErrWrongPassword — неверный пароль администратора
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — превышен лимит неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток входа, попробуйте через 15 минут")
	// ErrUnauthorized — сессия отсутствует, истекла или отозвана
	ErrUnauthorized = errors.New("требуется авторизация")
)

// Ошибки модерации
var (
	// ErrComplaintNotFound — жалоба с таким id не найдена
	ErrComplaintNotFound = errors.New("жалоба не найдена")
	// ErrInvalidTransition — жалоба уже рассмотрена (статус не pending)
	ErrInvalidTransition = errors.New("жалоба уже рассмотрена")
	// ErrNoReportedUser — в жалобе не указан пользователь для блокировки
	ErrNoReportedUser = errors.New("в жалобе не указан нарушитель")
	// ErrUpstreamFailure — реестр пользователей недоступен, блокировка не применена
	ErrUpstreamFailure = errors.New("не удалось заблокировать пользователя, повторите попытку")
)
