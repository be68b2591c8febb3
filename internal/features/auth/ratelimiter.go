// Package auth — ratelimiter.go ограничивает число неудачных попыток входа.
// Используется скользящее окно: считаются попытки за последние N минут
// от текущего момента, а не от границы «ведра». Ожидание границы окна
// не сбрасывает счётчик.
package auth

import (
	"context"
	"time"

	"anontalk.ru/admin-backend/internal/common"
)

// RateLimiter решает, заблокирован ли адрес клиента для входа.
// Сами попытки лежат в Store, лимитер только применяет политику.
type RateLimiter struct {
	store  Store
	limit  int
	window time.Duration
	clock  common.Clock
}

// NewRateLimiter создаёт лимитер с политикой limit попыток за window.
func NewRateLimiter(store Store, limit int, window time.Duration, clock common.Clock) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
		clock:  clock,
	}
}

// IsLocked возвращает true, если адрес набрал limit неудачных попыток
// внутри скользящего окна. Попытки старше окна не учитываются.
func (rl *RateLimiter) IsLocked(ctx context.Context, ipAddress string) (bool, error) {
	since := rl.clock.Now().Add(-rl.window)
	count, err := rl.store.CountRecentFailures(ctx, ipAddress, since)
	if err != nil {
		return false, err
	}
	return count >= rl.limit, nil
}

// RecordFailure записывает неудачную попытку.
// Каждая попытка считается отдельно, даже если несколько пришли в одну миллисекунду.
func (rl *RateLimiter) RecordFailure(ctx context.Context, ipAddress string) error {
	return rl.store.LogAttempt(ctx, ipAddress, false)
}

// RecordSuccess записывает успешный вход и очищает окно неудач:
// следующая неудача снова будет попыткой №1.
func (rl *RateLimiter) RecordSuccess(ctx context.Context, ipAddress string) error {
	if err := rl.store.ClearFailures(ctx, ipAddress); err != nil {
		return err
	}
	return rl.store.LogAttempt(ctx, ipAddress, true)
}
