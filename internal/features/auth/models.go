// Package auth реализует вход в админ-панель: проверку пароля,
// защиту от перебора и выдачу сессионных токенов.
// models.go описывает структуры сессий и попыток входа.
package auth

import "time"

// Session — активная сессия администратора.
// Токен — предъявительский: кто знает токен, тот и администратор.
// Срок действия фиксируется в момент входа и не продлевается.
type Session struct {
	ID           int64     `db:"id"`
	SessionToken string    `db:"session_token"`
	IPAddress    string    `db:"ip_address"`
	UserAgent    string    `db:"user_agent"`
	CreatedAt    time.Time `db:"created_at"`
	ExpiresAt    time.Time `db:"expires_at"`
	IsActive     bool      `db:"is_active"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
// Ключ — адрес клиента: лимит считается отдельно для каждого IP.
type LoginAttempt struct {
	ID          int64     `db:"id"`
	IPAddress   string    `db:"ip_address"`
	AttemptedAt time.Time `db:"attempted_at"`
	Success     bool      `db:"success"`
}
