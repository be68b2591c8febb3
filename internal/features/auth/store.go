// Package auth — store.go описывает интерфейс хранилища сессий и попыток входа.
// Реализации: PostgresStore (продакшен) и MemoryStore (тесты).
package auth

import (
	"context"
	"time"
)

// Store хранит сессии администратора и журнал попыток входа.
// Все операции атомарны по своему ключу (токен сессии / адрес клиента):
// параллельные неудачные входы с одного адреса не теряют записей.
type Store interface {
	// CreateSession сохраняет новую сессию.
	CreateSession(ctx context.Context, session *Session) error
	// GetSession возвращает активную сессию по токену.
	// Если сессии нет или она отозвана — (nil, nil).
	GetSession(ctx context.Context, token string) (*Session, error)
	// DeactivateSession отзывает сессию. Идемпотентна: незнакомый токен — не ошибка.
	DeactivateSession(ctx context.Context, token string) error

	// LogAttempt записывает попытку входа в журнал.
	LogAttempt(ctx context.Context, ipAddress string, success bool) error
	// CountRecentFailures считает неудачные попытки с адреса после since.
	CountRecentFailures(ctx context.Context, ipAddress string, since time.Time) (int, error)
	// ClearFailures удаляет неудачные попытки адреса.
	// Вызывается после успешного входа: счётчик начинается заново.
	ClearFailures(ctx context.Context, ipAddress string) error
}
